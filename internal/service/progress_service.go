package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/google/uuid"
)

// ProgressService derives a user's gamified progress on demand. Every
// read is a pure function of the scan ledger plus asOf; nothing here
// keeps a mutable counter that could drift from the events.
type ProgressService interface {
	// GetStats degrades like the other rewards reads: when the
	// underlying aggregates error out it returns a zeroed snapshot
	// instead of failing the request.
	GetStats(ctx context.Context, userID uuid.UUID, asOf time.Time) (*dto.UserStats, error)
	// GetBadges never fails: when the underlying aggregates error out
	// it returns the full catalog with earned=false so the rewards
	// screen still renders.
	GetBadges(ctx context.Context, userID uuid.UUID, asOf time.Time) []BadgeState
	// GetMilestones has the same degrade-to-zero policy as GetBadges.
	GetMilestones(ctx context.Context, userID uuid.UUID, asOf time.Time) []Milestone
	// AwardEligible persists award rows for every badge the user
	// currently qualifies for. Idempotent; duplicates are dropped by
	// the unique (user, badge) constraint.
	AwardEligible(ctx context.Context, userID uuid.UUID, asOf time.Time) error
}

type progressService struct {
	scanRepo  repository.ScanRepository
	badgeRepo repository.BadgeRepository
	impact    ImpactService
}

func NewProgressService(scanRepo repository.ScanRepository, badgeRepo repository.BadgeRepository, impact ImpactService) ProgressService {
	return &progressService{
		scanRepo:  scanRepo,
		badgeRepo: badgeRepo,
		impact:    impact,
	}
}

func (s *progressService) GetStats(ctx context.Context, userID uuid.UUID, asOf time.Time) (*dto.UserStats, error) {
	stats, err := s.statsSnapshot(ctx, userID, asOf)
	if err != nil {
		log.Printf("stats derivation failed for user %s, degrading to zero: %v", userID, err)
		return zeroStats(), nil
	}
	return stats, nil
}

// statsSnapshot is the fallible derivation; write paths that must not
// act on degraded numbers call it directly.
func (s *progressService) statsSnapshot(ctx context.Context, userID uuid.UUID, asOf time.Time) (*dto.UserStats, error) {
	itemsScanned, err := s.scanRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stamps, err := s.scanRepo.ScanTimestamps(ctx, userID)
	if err != nil {
		return nil, err
	}

	co2Kg, err := s.impact.CO2SavedKg(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPoints := int(itemsScanned) * PointsPerScan
	level := LevelForPoints(totalPoints)

	return &dto.UserStats{
		TotalPoints:  totalPoints,
		ItemsScanned: itemsScanned,
		CO2SavedKg:   co2Kg,
		CurrentLevel: level.CurrentLevel,
		NextLevel:    level.NextLevel,
		PointsToNext: level.PointsToNext,
		StreakDays:   StreakDays(stamps, asOf),
	}, nil
}

func zeroStats() *dto.UserStats {
	level := LevelForPoints(0)
	return &dto.UserStats{
		CurrentLevel: level.CurrentLevel,
		NextLevel:    level.NextLevel,
		PointsToNext: level.PointsToNext,
	}
}

func (s *progressService) GetBadges(ctx context.Context, userID uuid.UUID, asOf time.Time) []BadgeState {
	stats, err := s.statsSnapshot(ctx, userID, asOf)
	if err != nil {
		log.Printf("badge stats lookup failed for user %s, degrading to unearned: %v", userID, err)
		return EvaluateBadges(0, 0)
	}
	return EvaluateBadges(stats.ItemsScanned, stats.StreakDays)
}

func (s *progressService) GetMilestones(ctx context.Context, userID uuid.UUID, asOf time.Time) []Milestone {
	stats, err := s.statsSnapshot(ctx, userID, asOf)
	if err != nil {
		log.Printf("milestone stats lookup failed for user %s, degrading to zero: %v", userID, err)
		return EvaluateMilestones(0, 0, 0)
	}
	return EvaluateMilestones(stats.ItemsScanned, stats.CO2SavedKg, stats.StreakDays)
}

func (s *progressService) AwardEligible(ctx context.Context, userID uuid.UUID, asOf time.Time) error {
	stats, err := s.statsSnapshot(ctx, userID, asOf)
	if err != nil {
		return err
	}

	for _, state := range EvaluateBadges(stats.ItemsScanned, stats.StreakDays) {
		if !state.Earned {
			continue
		}

		badge, err := s.badgeRepo.FindByCode(ctx, state.Code)
		if err != nil {
			return fmt.Errorf("badge %s not in catalog: %w", state.Code, err)
		}

		reason := fmt.Sprintf("%d scans, %d-day streak", stats.ItemsScanned, stats.StreakDays)
		if err := s.badgeRepo.Award(ctx, userID, badge.ID, reason); err != nil {
			return err
		}
	}

	return nil
}
