package service

import (
	"math"
	"time"

	"github.com/ecosort/ecosort-backend/internal/model"
)

// Gamification rules: points per scan, level thresholds and
// badge/milestone targets. These are app-wide values, not per-deployment
// settings.
const (
	PointsPerScan = 10

	PointsEcoChampion     = 1000 // terminal level
	PointsPlanetGuardian  = 500
	PointsEcoWarrior      = 250
	PointsGreenEnthusiast = 100
	PointsRecycleRookie   = 50
	PointsBeginner        = 0

	BadgeFirstScan    = 1   // scans
	BadgeStreakMaster = 7   // consecutive days
	BadgePlasticPro   = 50  // scans
	BadgeGlassGuard   = 100 // scans
	BadgeMetalMaster  = 150 // scans
	BadgeEwasteExpert = 200 // scans

	MilestoneScanTarget   = 150
	MilestoneCO2TargetKg  = 20.0
	MilestoneStreakTarget = 30
)

// LevelStatus is the levelling slice of a user's progress snapshot.
// Level names form a fixed ladder; PointsToNext is zero only at the
// terminal level.
type LevelStatus struct {
	CurrentLevel string `json:"current_level"`
	NextLevel    string `json:"next_level"`
	PointsToNext int    `json:"points_to_next"`
}

// LevelForPoints resolves the level ladder for a point total.
// Thresholds are inclusive lower bounds: exactly 50 points is already
// Recycle Rookie.
func LevelForPoints(points int) LevelStatus {
	switch {
	case points >= PointsEcoChampion:
		return LevelStatus{CurrentLevel: "Eco Champion", NextLevel: "", PointsToNext: 0}
	case points >= PointsPlanetGuardian:
		return LevelStatus{CurrentLevel: "Planet Guardian", NextLevel: "Eco Champion", PointsToNext: PointsEcoChampion - points}
	case points >= PointsEcoWarrior:
		return LevelStatus{CurrentLevel: "Eco Warrior", NextLevel: "Planet Guardian", PointsToNext: PointsPlanetGuardian - points}
	case points >= PointsGreenEnthusiast:
		return LevelStatus{CurrentLevel: "Green Enthusiast", NextLevel: "Eco Warrior", PointsToNext: PointsEcoWarrior - points}
	case points >= PointsRecycleRookie:
		return LevelStatus{CurrentLevel: "Recycle Rookie", NextLevel: "Green Enthusiast", PointsToNext: PointsGreenEnthusiast - points}
	default:
		return LevelStatus{CurrentLevel: "Beginner", NextLevel: "Recycle Rookie", PointsToNext: PointsRecycleRookie - points}
	}
}

// StreakDays counts consecutive calendar days ending at asOf's date on
// which at least one scan exists. stamps may arrive in any order and
// may contain future-dated entries (client clock skew); those are
// skipped without breaking the streak. A missing candidate day stops
// the count immediately; the walk never jumps over gaps.
func StreakDays(stamps []time.Time, asOf time.Time) int {
	if len(stamps) == 0 {
		return 0
	}

	loc := asOf.Location()
	seen := make(map[string]struct{}, len(stamps))
	for _, ts := range stamps {
		seen[ts.In(loc).Format(model.DayLayout)] = struct{}{}
	}

	streak := 0
	candidate := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, loc)
	for {
		if _, ok := seen[candidate.Format(model.DayLayout)]; !ok {
			break
		}
		streak++
		candidate = candidate.AddDate(0, 0, -1)
	}

	return streak
}

// BadgeState pairs a catalog badge with its live eligibility. Earned is
// recomputed from current stats on every read so the display can never
// drift from the numbers next to it.
type BadgeState struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Earned bool   `json:"earned"`
}

// EvaluateBadges applies the static threshold rules to current stats.
// The order matches the app's badge grid.
func EvaluateBadges(itemsScanned int64, streakDays int) []BadgeState {
	return []BadgeState{
		{Code: "FIRST_SCAN", Name: "First Scan", Earned: itemsScanned >= BadgeFirstScan},
		{Code: "STREAK_MASTER", Name: "Streak Master", Earned: streakDays >= BadgeStreakMaster},
		{Code: "PLASTIC_PRO", Name: "Plastic Pro", Earned: itemsScanned >= BadgePlasticPro},
		{Code: "GLASS_GUARDIAN", Name: "Glass Guardian", Earned: itemsScanned >= BadgeGlassGuard},
		{Code: "METAL_MASTER", Name: "Metal Master", Earned: itemsScanned >= BadgeMetalMaster},
		{Code: "EWASTE_EXPERT", Name: "E-waste Expert", Earned: itemsScanned >= BadgeEwasteExpert},
	}
}

// Milestone is a long-running goal with capped progress toward a fixed
// total.
type Milestone struct {
	Goal     string  `json:"goal"`
	Progress float64 `json:"progress"`
	Total    float64 `json:"total"`
	Reward   string  `json:"reward"`
}

// EvaluateMilestones builds the three fixed milestones with progress
// capped at each total.
func EvaluateMilestones(itemsScanned int64, co2SavedKg float64, streakDays int) []Milestone {
	return []Milestone{
		{
			Goal:     "Scan 150 items",
			Progress: math.Min(float64(itemsScanned), MilestoneScanTarget),
			Total:    MilestoneScanTarget,
			Reward:   "+500 points",
		},
		{
			Goal:     "Save 20kg CO₂",
			Progress: math.Min(co2SavedKg, MilestoneCO2TargetKg),
			Total:    MilestoneCO2TargetKg,
			Reward:   "Eco Hero badge",
		},
		{
			Goal:     "30-day streak",
			Progress: math.Min(float64(streakDays), MilestoneStreakTarget),
			Total:    MilestoneStreakTarget,
			Reward:   "Premium features",
		},
	}
}

// WeekStart returns midnight on the Monday of t's ISO week, in t's
// location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	isoWeekday := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -isoWeekday)
}

// RoundKg rounds to 2 decimal places for display.
func RoundKg(v float64) float64 {
	return math.Round(v*100) / 100
}
