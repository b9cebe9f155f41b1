package dto

// UserStats is the consistent progress snapshot for the rewards screen,
// derived on demand from the scan ledger and daily impact totals.
type UserStats struct {
	TotalPoints  int     `json:"total_points"`
	ItemsScanned int64   `json:"items_scanned"`
	CO2SavedKg   float64 `json:"co2_saved_kg"`
	CurrentLevel string  `json:"current_level"`
	NextLevel    string  `json:"next_level"`
	PointsToNext int     `json:"points_to_next"`
	StreakDays   int     `json:"streak_days"`
}

// LeaderboardRow is one display row of the weekly leaderboard. IsYou
// marks the requesting user's own entry when it is appended below the
// top ten.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	IsYou       bool   `json:"is_you,omitempty"`
}

type LeaderboardResponse struct {
	WeekStart string           `json:"week_start"`
	Entries   []LeaderboardRow `json:"entries"`
}
