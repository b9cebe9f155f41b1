package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

const scanRateLimitAction = "record_scan"

// ScanService is the event-ingestion write path: it appends the scan
// to the ledger, folds it into the daily impact totals and settles any
// newly reached badge awards. Classification itself happens upstream;
// the client submits its result.
type ScanService interface {
	RecordScan(ctx context.Context, userID uuid.UUID, input dto.RecordScanInput) (*model.ScanEvent, error)
	ListScans(ctx context.Context, userID uuid.UUID, limit int) ([]model.ScanEvent, error)
}

type scanService struct {
	repo      repository.ScanRepository
	impact    ImpactService
	progress  ProgressService
	rdb       *redis.Client
	rateLimit time.Duration
	sanitizer *bluemonday.Policy
}

// NewScanService builds the ingestion service. rdb may be nil to
// disable the duplicate-submission rate limit.
func NewScanService(repo repository.ScanRepository, impact ImpactService, progress ProgressService, rdb *redis.Client, rateLimit time.Duration) ScanService {
	return &scanService{
		repo:      repo,
		impact:    impact,
		progress:  progress,
		rdb:       rdb,
		rateLimit: rateLimit,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *scanService) RecordScan(ctx context.Context, userID uuid.UUID, input dto.RecordScanInput) (*model.ScanEvent, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, userID, scanRateLimitAction, s.rateLimit)
	if err != nil {
		// Redis being down must not block scan ingestion.
		log.Printf("scan rate limit check failed for user %s: %v", userID, err)
	} else if !allowed {
		return nil, apperror.ErrTooManyScans
	}

	scan := &model.ScanEvent{
		UserID:            &userID,
		ItemName:          s.cleanText(input.ItemName),
		PredictedMaterial: strings.ToLower(strings.TrimSpace(input.PredictedMaterial)),
		Confidence:        input.Confidence,
		Decision:          input.Decision,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
	}

	if err := s.repo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to record scan: %w", err)
	}

	if err := s.impact.ApplyScan(ctx, scan); err != nil {
		// The scan row is the source of truth; the aggregate can be
		// rebuilt, so this failure surfaces in logs only.
		log.Printf("failed to apply impact for scan %s: %v", scan.ID, err)
	}

	if err := s.progress.AwardEligible(ctx, userID, scan.CreatedAt); err != nil {
		log.Printf("failed to settle badge awards for user %s: %v", userID, err)
	}

	return scan, nil
}

func (s *scanService) ListScans(ctx context.Context, userID uuid.UUID, limit int) ([]model.ScanEvent, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *scanService) cleanText(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
