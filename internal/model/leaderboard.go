package model

import (
	"github.com/google/uuid"
)

// WeeklyLeaderboardEntry is one row of a ranked weekly snapshot.
// WeekStart is the Monday of the ISO week, formatted with DayLayout.
// The whole week's rows are replaced in one transaction on recompute,
// so readers always see a complete ranking.
type WeeklyLeaderboardEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_leaderboard_user_week;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WeekStart string    `gorm:"size:10;uniqueIndex:uq_leaderboard_user_week;index;not null" json:"week_start"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	Rank      int       `gorm:"not null" json:"rank"`
}
