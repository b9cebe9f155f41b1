package repository

import (
	"context"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CenterRepository interface {
	Create(ctx context.Context, center *model.RecyclingCenter) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RecyclingCenter, error)
	FindAll(ctx context.Context) ([]model.RecyclingCenter, error)
	// SearchByName is the database fallback when meilisearch is not
	// reachable: a case-insensitive substring match on name/address.
	SearchByName(ctx context.Context, query string, limit int) ([]model.RecyclingCenter, error)
}

type centerRepository struct {
	db *gorm.DB
}

func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

func (r *centerRepository) Create(ctx context.Context, center *model.RecyclingCenter) error {
	return r.db.WithContext(ctx).Create(center).Error
}

func (r *centerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RecyclingCenter, error) {
	var center model.RecyclingCenter
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&center).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *centerRepository) FindAll(ctx context.Context) ([]model.RecyclingCenter, error) {
	var centers []model.RecyclingCenter
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *centerRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.RecyclingCenter, error) {
	var centers []model.RecyclingCenter
	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern).
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}
