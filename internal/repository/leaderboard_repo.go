package repository

import (
	"context"
	"errors"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaderboardRepository interface {
	// ReplaceWeek swaps in a freshly ranked snapshot for the week in a
	// single transaction. Readers see either the old full set or the
	// new full set, never a partial overwrite.
	ReplaceWeek(ctx context.Context, weekStart string, entries []model.WeeklyLeaderboardEntry) error
	// ListWeek returns the week's entries ordered by rank, with the
	// user preloaded for display names. limit <= 0 means no limit.
	ListWeek(ctx context.Context, weekStart string, limit int) ([]model.WeeklyLeaderboardEntry, error)
	FindEntry(ctx context.Context, weekStart string, userID uuid.UUID) (*model.WeeklyLeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) ReplaceWeek(ctx context.Context, weekStart string, entries []model.WeeklyLeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_start = ?", weekStart).
			Delete(&model.WeeklyLeaderboardEntry{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		return tx.Create(&entries).Error
	})
}

func (r *leaderboardRepository) ListWeek(ctx context.Context, weekStart string, limit int) ([]model.WeeklyLeaderboardEntry, error) {
	var entries []model.WeeklyLeaderboardEntry
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("week_start = ?", weekStart).
		Order("rank ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) FindEntry(ctx context.Context, weekStart string, userID uuid.UUID) (*model.WeeklyLeaderboardEntry, error) {
	var entry model.WeeklyLeaderboardEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("week_start = ? AND user_id = ?", weekStart, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
