package repository

import (
	"context"
	"errors"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImpactRepository interface {
	// IncrementDaily adds the given savings onto the (user, day) row,
	// creating it when absent. The increment happens inside a single
	// ON CONFLICT upsert so concurrent scans for the same day never
	// lose updates.
	IncrementDaily(ctx context.Context, userID uuid.UUID, day string, co2G, waterL, energyWh float64) error
	FindDay(ctx context.Context, userID uuid.UUID, day string) (*model.DailyImpact, error)
	// SumCO2Grams totals co2_saved_g across all days for the user.
	// A user with no rows sums to zero, not an error.
	SumCO2Grams(ctx context.Context, userID uuid.UUID) (float64, error)
}

type impactRepository struct {
	db *gorm.DB
}

func NewImpactRepository(db *gorm.DB) ImpactRepository {
	return &impactRepository{db: db}
}

func (r *impactRepository) IncrementDaily(ctx context.Context, userID uuid.UUID, day string, co2G, waterL, energyWh float64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"co2_saved_g":     gorm.Expr("daily_impacts.co2_saved_g + ?", co2G),
			"water_saved_l":   gorm.Expr("daily_impacts.water_saved_l + ?", waterL),
			"energy_saved_wh": gorm.Expr("daily_impacts.energy_saved_wh + ?", energyWh),
		}),
	}).Create(&model.DailyImpact{
		UserID:        userID,
		Day:           day,
		CO2SavedG:     co2G,
		WaterSavedL:   waterL,
		EnergySavedWh: energyWh,
	}).Error
}

func (r *impactRepository) FindDay(ctx context.Context, userID uuid.UUID, day string) (*model.DailyImpact, error) {
	var impact model.DailyImpact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&impact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &impact, nil
}

func (r *impactRepository) SumCO2Grams(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.DailyImpact{}).
		Select("COALESCE(SUM(co2_saved_g), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
