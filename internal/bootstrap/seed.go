package bootstrap

import (
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/service"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ScanEvent{},
		&model.DailyImpact{},
		&model.WeeklyLeaderboardEntry{},
		&model.Badge{},
		&model.UserBadge{},
		&model.RecyclingCenter{},
	)
}

// SeedBadges inserts the badge catalog. Idempotent: existing codes are
// left untouched so manual edits to names/descriptions survive restarts.
func SeedBadges(db *gorm.DB) error {
	catalog := []model.Badge{
		{Code: "FIRST_SCAN", Name: "First Scan", Description: "Record your first scan", PointsRequired: service.BadgeFirstScan},
		{Code: "STREAK_MASTER", Name: "Streak Master", Description: "Scan on 7 days in a row", PointsRequired: service.BadgeStreakMaster},
		{Code: "PLASTIC_PRO", Name: "Plastic Pro", Description: "Scan 50 items", PointsRequired: service.BadgePlasticPro},
		{Code: "GLASS_GUARDIAN", Name: "Glass Guardian", Description: "Scan 100 items", PointsRequired: service.BadgeGlassGuard},
		{Code: "METAL_MASTER", Name: "Metal Master", Description: "Scan 150 items", PointsRequired: service.BadgeMetalMaster},
		{Code: "EWASTE_EXPERT", Name: "E-waste Expert", Description: "Scan 200 items", PointsRequired: service.BadgeEwasteExpert},
	}

	for _, badge := range catalog {
		var count int64
		if err := db.Model(&model.Badge{}).
			Where("code = ?", badge.Code).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&badge).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
