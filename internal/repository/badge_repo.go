package repository

import (
	"context"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	ListCatalog(ctx context.Context) ([]model.Badge, error)
	FindByCode(ctx context.Context, code string) (*model.Badge, error)
	// Award inserts the (user, badge) row if absent. Duplicate awards
	// are silently dropped by the ON CONFLICT clause, so the call is
	// idempotent and safe to retry.
	Award(ctx context.Context, userID uuid.UUID, badgeID uint, reason string) error
	ListAwards(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) FindByCode(ctx context.Context, code string) (*model.Badge, error) {
	var badge model.Badge
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&badge).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) Award(ctx context.Context, userID uuid.UUID, badgeID uint, reason string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&model.UserBadge{
		UserID:  userID,
		BadgeID: badgeID,
		Reason:  reason,
	}).Error
}

func (r *badgeRepository) ListAwards(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error) {
	var awards []model.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&awards).Error
	if err != nil {
		return nil, err
	}
	return awards, nil
}
