package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/ecosort/ecosort-backend/internal/bootstrap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database migrated with
// the full schema. Each call gets its own database so tests can run in
// parallel without sharing state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// sqlite allows one writer at a time; a single pooled connection
	// keeps concurrent test goroutines from tripping over busy errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := bootstrap.SeedBadges(db); err != nil {
		t.Fatalf("failed to seed badges: %v", err)
	}

	return db
}
