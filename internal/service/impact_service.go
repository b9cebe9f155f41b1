package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/google/uuid"
)

// ImpactFactor is the estimated environmental saving of recycling one
// item of a material.
type ImpactFactor struct {
	CO2Grams      float64
	WaterLiters   float64
	EnergyWattHrs float64
}

// DefaultImpactFactors is the built-in material table. Callers may pass
// their own table to NewImpactService; material keys are matched
// case-insensitively.
var DefaultImpactFactors = map[string]ImpactFactor{
	"plastic":     {CO2Grams: 104, WaterLiters: 22, EnergyWattHrs: 580},
	"glass":       {CO2Grams: 80, WaterLiters: 2, EnergyWattHrs: 120},
	"metal":       {CO2Grams: 150, WaterLiters: 14, EnergyWattHrs: 990},
	"aluminum":    {CO2Grams: 160, WaterLiters: 15, EnergyWattHrs: 1100},
	"paper":       {CO2Grams: 46, WaterLiters: 25, EnergyWattHrs: 180},
	"cardboard":   {CO2Grams: 55, WaterLiters: 20, EnergyWattHrs: 190},
	"electronics": {CO2Grams: 300, WaterLiters: 40, EnergyWattHrs: 1500},
	"battery":     {CO2Grams: 120, WaterLiters: 8, EnergyWattHrs: 400},
}

type ImpactService interface {
	// ApplyScan folds a scan event into the user's daily totals via an
	// atomic upsert-increment. Scans whose decision keeps the item out
	// of recycling, or whose material has no factor, are a no-op.
	ApplyScan(ctx context.Context, scan *model.ScanEvent) error
	// CO2SavedKg is the all-time total in kilograms, rounded to two
	// decimals. A user with no impact rows reports zero.
	CO2SavedKg(ctx context.Context, userID uuid.UUID) (float64, error)
	// VerifyDay recomputes one day's totals from the scan ledger and
	// compares them with the stored aggregate row. Used as an offline
	// consistency check, never in the hot path.
	VerifyDay(ctx context.Context, userID uuid.UUID, day time.Time) error
}

type impactService struct {
	repo     repository.ImpactRepository
	scanRepo repository.ScanRepository
	factors  map[string]ImpactFactor
}

func NewImpactService(repo repository.ImpactRepository, scanRepo repository.ScanRepository, factors map[string]ImpactFactor) ImpactService {
	if factors == nil {
		factors = DefaultImpactFactors
	}
	return &impactService{
		repo:     repo,
		scanRepo: scanRepo,
		factors:  factors,
	}
}

func (s *impactService) factorFor(scan *model.ScanEvent) (ImpactFactor, bool) {
	if scan.Decision == model.DecisionNotRecyclable {
		return ImpactFactor{}, false
	}
	factor, ok := s.factors[strings.ToLower(scan.PredictedMaterial)]
	return factor, ok
}

func (s *impactService) ApplyScan(ctx context.Context, scan *model.ScanEvent) error {
	if scan.UserID == nil {
		return nil
	}

	factor, ok := s.factorFor(scan)
	if !ok {
		return nil
	}

	day := scan.CreatedAt.Format(model.DayLayout)
	return s.repo.IncrementDaily(ctx, *scan.UserID, day, factor.CO2Grams, factor.WaterLiters, factor.EnergyWattHrs)
}

func (s *impactService) CO2SavedKg(ctx context.Context, userID uuid.UUID) (float64, error) {
	grams, err := s.repo.SumCO2Grams(ctx, userID)
	if err != nil {
		return 0, err
	}
	return RoundKg(grams / 1000), nil
}

func (s *impactService) VerifyDay(ctx context.Context, userID uuid.UUID, day time.Time) error {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	scans, err := s.scanRepo.ListByUserInRange(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	var want ImpactFactor
	for i := range scans {
		if factor, ok := s.factorFor(&scans[i]); ok {
			want.CO2Grams += factor.CO2Grams
			want.WaterLiters += factor.WaterLiters
			want.EnergyWattHrs += factor.EnergyWattHrs
		}
	}

	stored, err := s.repo.FindDay(ctx, userID, dayStart.Format(model.DayLayout))
	if err != nil {
		return err
	}

	var got ImpactFactor
	if stored != nil {
		got = ImpactFactor{CO2Grams: stored.CO2SavedG, WaterLiters: stored.WaterSavedL, EnergyWattHrs: stored.EnergySavedWh}
	}

	if got != want {
		return fmt.Errorf("impact drift for user %s on %s: stored %+v, replayed %+v",
			userID, dayStart.Format(model.DayLayout), got, want)
	}
	return nil
}
