package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points       int
		level        string
		next         string
		pointsToNext int
	}{
		{0, "Beginner", "Recycle Rookie", 50},
		{49, "Beginner", "Recycle Rookie", 1},
		{50, "Recycle Rookie", "Green Enthusiast", 50},
		{100, "Green Enthusiast", "Eco Warrior", 150},
		{249, "Green Enthusiast", "Eco Warrior", 1},
		{250, "Eco Warrior", "Planet Guardian", 250},
		{500, "Planet Guardian", "Eco Champion", 500},
		{999, "Planet Guardian", "Eco Champion", 1},
		{1000, "Eco Champion", "", 0},
		{5000, "Eco Champion", "", 0},
	}

	for _, tt := range tests {
		got := LevelForPoints(tt.points)
		assert.Equal(t, tt.level, got.CurrentLevel, "points=%d", tt.points)
		assert.Equal(t, tt.next, got.NextLevel, "points=%d", tt.points)
		assert.Equal(t, tt.pointsToNext, got.PointsToNext, "points=%d", tt.points)
	}
}

func TestStreakDaysConsecutive(t *testing.T) {
	asOf := day(2026, time.March, 10)
	stamps := []time.Time{
		day(2026, time.March, 10),
		day(2026, time.March, 9),
		day(2026, time.March, 8),
	}

	assert.Equal(t, 3, StreakDays(stamps, asOf))
}

func TestStreakDaysGapStopsCount(t *testing.T) {
	asOf := day(2026, time.March, 10)
	stamps := []time.Time{
		day(2026, time.March, 10),
		// no scan on the 9th
		day(2026, time.March, 8),
		day(2026, time.March, 7),
	}

	assert.Equal(t, 1, StreakDays(stamps, asOf))
}

func TestStreakDaysNoScanToday(t *testing.T) {
	asOf := day(2026, time.March, 10)
	stamps := []time.Time{
		day(2026, time.March, 9),
		day(2026, time.March, 8),
	}

	// The walk starts at asOf's date; a missing today means zero.
	assert.Equal(t, 0, StreakDays(stamps, asOf))
}

func TestStreakDaysIgnoresFutureAndDuplicates(t *testing.T) {
	asOf := day(2026, time.March, 10)
	stamps := []time.Time{
		day(2026, time.March, 12), // client clock skew
		day(2026, time.March, 10),
		day(2026, time.March, 10),
		day(2026, time.March, 9),
	}

	assert.Equal(t, 2, StreakDays(stamps, asOf))
}

func TestStreakDaysEmpty(t *testing.T) {
	assert.Equal(t, 0, StreakDays(nil, day(2026, time.March, 10)))
}

func TestEvaluateBadgesThresholds(t *testing.T) {
	byCode := func(states []BadgeState) map[string]bool {
		m := make(map[string]bool, len(states))
		for _, s := range states {
			m[s.Code] = s.Earned
		}
		return m
	}

	none := byCode(EvaluateBadges(0, 0))
	for code, earned := range none {
		assert.False(t, earned, "code=%s", code)
	}

	first := byCode(EvaluateBadges(1, 1))
	assert.True(t, first["FIRST_SCAN"])
	assert.False(t, first["PLASTIC_PRO"])
	assert.False(t, first["STREAK_MASTER"])

	fifty := byCode(EvaluateBadges(50, 7))
	assert.True(t, fifty["PLASTIC_PRO"])
	assert.True(t, fifty["STREAK_MASTER"])
	assert.False(t, fifty["GLASS_GUARDIAN"])

	all := byCode(EvaluateBadges(200, 7))
	assert.True(t, all["GLASS_GUARDIAN"])
	assert.True(t, all["METAL_MASTER"])
	assert.True(t, all["EWASTE_EXPERT"])
}

func TestEvaluateMilestonesCapsProgress(t *testing.T) {
	milestones := EvaluateMilestones(400, 35.5, 90)

	assert.Len(t, milestones, 3)
	assert.Equal(t, float64(MilestoneScanTarget), milestones[0].Progress)
	assert.Equal(t, MilestoneCO2TargetKg, milestones[1].Progress)
	assert.Equal(t, float64(MilestoneStreakTarget), milestones[2].Progress)

	partial := EvaluateMilestones(10, 1.5, 4)
	assert.Equal(t, 10.0, partial[0].Progress)
	assert.Equal(t, 1.5, partial[1].Progress)
	assert.Equal(t, 4.0, partial[2].Progress)
}

func TestWeekStart(t *testing.T) {
	// 2026-03-10 is a Tuesday; its week starts Monday the 9th.
	assert.Equal(t, "2026-03-09", WeekStart(day(2026, time.March, 10)).Format("2006-01-02"))

	// Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, "2026-03-09", WeekStart(day(2026, time.March, 15)).Format("2006-01-02"))

	// Monday is its own week start.
	assert.Equal(t, "2026-03-09", WeekStart(day(2026, time.March, 9)).Format("2006-01-02"))

	// Week spanning a year boundary: 2026-01-01 is a Thursday.
	assert.Equal(t, "2025-12-29", WeekStart(day(2026, time.January, 1)).Format("2006-01-02"))
}

func TestRoundKg(t *testing.T) {
	assert.Equal(t, 0.1, RoundKg(0.104))
	assert.Equal(t, 1.25, RoundKg(1.2451))
	assert.Equal(t, 0.0, RoundKg(0))
}
