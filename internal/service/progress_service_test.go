package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedScan(t *testing.T, db *gorm.DB, userID uuid.UUID, material string, at time.Time) *model.ScanEvent {
	t.Helper()
	scan := &model.ScanEvent{
		UserID:            &userID,
		ItemName:          "item",
		PredictedMaterial: material,
		Confidence:        0.9,
		Decision:          model.DecisionRecycle,
		CreatedAt:         at,
	}
	require.NoError(t, db.Create(scan).Error)
	return scan
}

func newProgressService(db *gorm.DB) service.ProgressService {
	scanRepo := repository.NewScanRepository(db)
	impactSvc := service.NewImpactService(repository.NewImpactRepository(db), scanRepo, nil)
	return service.NewProgressService(scanRepo, repository.NewBadgeRepository(db), impactSvc)
}

func TestGetStatsFromLedger(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)
	ctx := context.Background()

	user := seedUser(t, db, "stats")
	asOf := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedScan(t, db, user.ID, "plastic", asOf.Add(-time.Duration(i)*time.Hour))
	}

	stats, err := svc.GetStats(ctx, user.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ItemsScanned)
	assert.Equal(t, 30, stats.TotalPoints)
	assert.Equal(t, "Beginner", stats.CurrentLevel)
	assert.Equal(t, "Recycle Rookie", stats.NextLevel)
	assert.Equal(t, 20, stats.PointsToNext)
	assert.Equal(t, 1, stats.StreakDays)
}

func TestGetStatsIsRepeatable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)
	ctx := context.Background()

	user := seedUser(t, db, "repeat")
	asOf := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	seedScan(t, db, user.ID, "glass", asOf)

	first, err := svc.GetStats(ctx, user.ID, asOf)
	require.NoError(t, err)
	second, err := svc.GetStats(ctx, user.ID, asOf)
	require.NoError(t, err)

	// Reads never mutate state, so back-to-back snapshots are identical.
	assert.Equal(t, first, second)
}

func TestGetStatsNewUserIsZeroed(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)

	user := seedUser(t, db, "fresh")
	stats, err := svc.GetStats(context.Background(), user.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.ItemsScanned)
	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 0.0, stats.CO2SavedKg)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Equal(t, "Beginner", stats.CurrentLevel)
}

func TestGetStatsDegradesWhenLedgerUnavailable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)
	ctx := context.Background()

	user := seedUser(t, db, "statsdown")
	asOf := time.Now()
	seedScan(t, db, user.ID, "plastic", asOf)

	require.NoError(t, db.Migrator().DropTable(&model.ScanEvent{}))

	stats, err := svc.GetStats(ctx, user.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.ItemsScanned)
	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 0.0, stats.CO2SavedKg)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Equal(t, "Beginner", stats.CurrentLevel)
	assert.Equal(t, "Recycle Rookie", stats.NextLevel)
	assert.Equal(t, 50, stats.PointsToNext)
}

func TestGetBadgesDegradesWhenLedgerUnavailable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)
	ctx := context.Background()

	user := seedUser(t, db, "degrade")
	asOf := time.Now()
	seedScan(t, db, user.ID, "plastic", asOf)

	require.NoError(t, db.Migrator().DropTable(&model.ScanEvent{}))

	badges := svc.GetBadges(ctx, user.ID, asOf)
	assert.Len(t, badges, 6)
	for _, b := range badges {
		assert.False(t, b.Earned, "code=%s", b.Code)
	}

	milestones := svc.GetMilestones(ctx, user.ID, asOf)
	assert.Len(t, milestones, 3)
	for _, m := range milestones {
		assert.Equal(t, 0.0, m.Progress, "goal=%s", m.Goal)
	}
}

func TestAwardEligibleIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := newProgressService(db)
	badgeRepo := repository.NewBadgeRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "award")
	asOf := time.Now()
	seedScan(t, db, user.ID, "plastic", asOf)

	require.NoError(t, svc.AwardEligible(ctx, user.ID, asOf))
	require.NoError(t, svc.AwardEligible(ctx, user.ID, asOf))

	awards, err := badgeRepo.ListAwards(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "FIRST_SCAN", awards[0].Badge.Code)
}
