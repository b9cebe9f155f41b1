package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leaderboardTopN = 10

type LeaderboardService interface {
	// RecomputeWeek rebuilds the ranked snapshot for the week holding
	// the given time. Deterministic: points desc, ties broken by
	// ascending user id, ranks 1..N. Safe to rerun at any time.
	RecomputeWeek(ctx context.Context, at time.Time) error
	// GetLeaderboard returns the top ten of the requested week plus the
	// requesting user's own row when ranked below that. A week without
	// a snapshot yields an empty list.
	GetLeaderboard(ctx context.Context, at time.Time, requestingUserID uuid.UUID) (*dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	repo     repository.LeaderboardRepository
	scanRepo repository.ScanRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewLeaderboardService builds the ranker. rdb may be nil; caching is
// then skipped entirely.
func NewLeaderboardService(repo repository.LeaderboardRepository, scanRepo repository.ScanRepository, rdb *redis.Client, cacheTTL time.Duration) LeaderboardService {
	return &leaderboardService{
		repo:     repo,
		scanRepo: scanRepo,
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(weekStart string) string {
	return "leaderboard:week:" + weekStart
}

func (s *leaderboardService) RecomputeWeek(ctx context.Context, at time.Time) error {
	weekStart := WeekStart(at)
	weekKey := weekStart.Format(model.DayLayout)

	counts, err := s.scanRepo.CountsByUserInRange(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return fmt.Errorf("failed to aggregate weekly scans: %w", err)
	}

	entries := make([]model.WeeklyLeaderboardEntry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, model.WeeklyLeaderboardEntry{
			UserID:    c.UserID,
			WeekStart: weekKey,
			Points:    int(c.Scans) * PointsPerScan,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if err := s.repo.ReplaceWeek(ctx, weekKey, entries); err != nil {
		return err
	}

	s.invalidateCache(ctx, weekKey)
	return nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, at time.Time, requestingUserID uuid.UUID) (*dto.LeaderboardResponse, error) {
	weekKey := WeekStart(at).Format(model.DayLayout)

	top, ok := s.readCache(ctx, weekKey)
	if !ok {
		entries, err := s.repo.ListWeek(ctx, weekKey, leaderboardTopN)
		if err != nil {
			return nil, err
		}

		top = make([]dto.LeaderboardRow, 0, len(entries))
		for _, e := range entries {
			top = append(top, dto.LeaderboardRow{
				Rank:        e.Rank,
				DisplayName: e.User.Name,
				Points:      e.Points,
			})
		}
		s.writeCache(ctx, weekKey, top)
	}

	// IsYou is per-requester, so it is applied outside the shared
	// cached rows.
	var own *model.WeeklyLeaderboardEntry
	if requestingUserID != uuid.Nil {
		entry, err := s.repo.FindEntry(ctx, weekKey, requestingUserID)
		if err != nil {
			return nil, err
		}
		own = entry
	}

	rows := make([]dto.LeaderboardRow, 0, len(top)+1)
	inTop := false
	for _, row := range top {
		if own != nil && own.Rank == row.Rank {
			row.IsYou = true
			inTop = true
		}
		rows = append(rows, row)
	}

	if own != nil && !inTop {
		rows = append(rows, dto.LeaderboardRow{
			Rank:        own.Rank,
			DisplayName: own.User.Name,
			Points:      own.Points,
			IsYou:       true,
		})
	}

	return &dto.LeaderboardResponse{WeekStart: weekKey, Entries: rows}, nil
}

func (s *leaderboardService) readCache(ctx context.Context, weekKey string) ([]dto.LeaderboardRow, bool) {
	if s.rdb == nil {
		return nil, false
	}

	raw, err := s.rdb.Get(ctx, cacheKey(weekKey)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("leaderboard cache read failed for %s: %v", weekKey, err)
		}
		return nil, false
	}

	var rows []dto.LeaderboardRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		log.Printf("leaderboard cache decode failed for %s: %v", weekKey, err)
		return nil, false
	}
	return rows, true
}

func (s *leaderboardService) writeCache(ctx context.Context, weekKey string, rows []dto.LeaderboardRow) {
	if s.rdb == nil {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey(weekKey), raw, s.cacheTTL).Err(); err != nil {
		log.Printf("leaderboard cache write failed for %s: %v", weekKey, err)
	}
}

func (s *leaderboardService) invalidateCache(ctx context.Context, weekKey string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(weekKey)).Err(); err != nil {
		log.Printf("leaderboard cache invalidation failed for %s: %v", weekKey, err)
	}
}
