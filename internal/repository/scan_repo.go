package repository

import (
	"context"
	"time"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserScanCount is an aggregation row: how many scans a user recorded
// inside some time window.
type UserScanCount struct {
	UserID uuid.UUID
	Scans  int64
}

type ScanRepository interface {
	Create(ctx context.Context, scan *model.ScanEvent) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ScanEvent, error)
	// ScanTimestamps returns every scan creation time for the user,
	// newest first. Streak derivation dedupes to calendar days in Go so
	// the query stays portable across postgres and sqlite.
	ScanTimestamps(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	// CountsByUserInRange aggregates scan counts per user for
	// created_at in [from, to).
	CountsByUserInRange(ctx context.Context, from, to time.Time) ([]UserScanCount, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.ScanEvent, error)
}

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, scan *model.ScanEvent) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *scanRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ScanEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *scanRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ScanEvent, error) {
	var scans []model.ScanEvent
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *scanRepository) ScanTimestamps(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).Model(&model.ScanEvent{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, err
	}
	return stamps, nil
}

func (r *scanRepository) CountsByUserInRange(ctx context.Context, from, to time.Time) ([]UserScanCount, error) {
	var counts []UserScanCount
	err := r.db.WithContext(ctx).Model(&model.ScanEvent{}).
		Select("user_id, COUNT(*) as scans").
		Where("user_id IS NOT NULL AND created_at >= ? AND created_at < ?", from, to).
		Group("user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *scanRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.ScanEvent, error) {
	var scans []model.ScanEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC").
		Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}
