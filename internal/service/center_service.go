package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const centersIndex = "centers"

type CenterService interface {
	CreateCenter(ctx context.Context, input dto.CreateCenterInput) (*model.RecyclingCenter, error)
	GetCenter(ctx context.Context, id uuid.UUID) (*model.RecyclingCenter, error)
	ListCenters(ctx context.Context) ([]model.RecyclingCenter, error)
	// SearchCenters queries the meilisearch index and falls back to a
	// database LIKE search when the index is unreachable.
	SearchCenters(ctx context.Context, query string, limit int) ([]model.RecyclingCenter, error)
}

type centerService struct {
	repo      repository.CenterRepository
	search    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewCenterService wires the directory. search may be nil; lookups then
// use the database only.
func NewCenterService(repo repository.CenterRepository, search meilisearch.ServiceManager) CenterService {
	s := &centerService{
		repo:      repo,
		search:    search,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *centerService) initIndex() {
	if s.search == nil {
		return
	}

	sortableAttrs := []string{"name", "created_at"}
	if _, err := s.search.Index(centersIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update centers sortable attributes: %v", err)
	}

	log.Println("Meilisearch centers index initialized")
}

type meiliCenterDoc struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt int64   `json:"created_at"`
}

func (s *centerService) CreateCenter(ctx context.Context, input dto.CreateCenterInput) (*model.RecyclingCenter, error) {
	center := &model.RecyclingCenter{
		Name:      s.cleanText(input.Name),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Address:   s.cleanText(input.Address),
		Phone:     strings.TrimSpace(input.Phone),
		Website:   strings.TrimSpace(input.Website),
	}

	if err := s.repo.Create(ctx, center); err != nil {
		return nil, err
	}

	s.indexCenter(center)
	return center, nil
}

func (s *centerService) indexCenter(center *model.RecyclingCenter) {
	if s.search == nil {
		return
	}

	doc := meiliCenterDoc{
		ID:        center.ID.String(),
		Name:      center.Name,
		Address:   center.Address,
		Latitude:  center.Latitude,
		Longitude: center.Longitude,
		CreatedAt: center.CreatedAt.Unix(),
	}

	task, err := s.search.Index(centersIndex).AddDocuments([]meiliCenterDoc{doc}, strPtr("id"))
	if err != nil {
		// The database row is authoritative; the index catches up on
		// the next reindex.
		log.Printf("Failed to index center %s: %v", center.ID, err)
		return
	}
	log.Printf("Indexed center %s, task id: %d", center.ID, task.TaskUID)
}

func (s *centerService) GetCenter(ctx context.Context, id uuid.UUID) (*model.RecyclingCenter, error) {
	center, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recycling center not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return center, nil
}

func (s *centerService) ListCenters(ctx context.Context) ([]model.RecyclingCenter, error) {
	return s.repo.FindAll(ctx)
}

func (s *centerService) SearchCenters(ctx context.Context, query string, limit int) ([]model.RecyclingCenter, error) {
	if limit <= 0 {
		limit = 20
	}

	if s.search != nil {
		res, err := s.search.Index(centersIndex).Search(query, &meilisearch.SearchRequest{
			Limit: int64(limit),
		})
		if err == nil {
			return s.resolveHits(ctx, res.Hits), nil
		}
		log.Printf("Meilisearch centers query failed, falling back to database: %v", err)
	}

	return s.repo.SearchByName(ctx, query, limit)
}

// resolveHits maps index hits back to database rows, dropping any the
// index knows about but the database no longer has.
func (s *centerService) resolveHits(ctx context.Context, hits meilisearch.Hits) []model.RecyclingCenter {
	centers := make([]model.RecyclingCenter, 0, len(hits))
	for _, hit := range hits {
		var doc meiliCenterDoc
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}

		center, err := s.repo.FindByID(ctx, id)
		if err != nil {
			continue
		}
		centers = append(centers, *center)
	}
	return centers
}

func (s *centerService) cleanText(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

func strPtr(s string) *string {
	return &s
}
