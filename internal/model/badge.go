package model

import (
	"time"

	"github.com/google/uuid"
)

// Badge is a catalog entry seeded at startup. Display always
// re-evaluates eligibility live from current stats; the catalog and
// the awards table only keep the historical "when earned" record.
type Badge struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name           string    `gorm:"size:120;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Icon           string    `gorm:"type:text" json:"icon,omitempty"`
	PointsRequired int       `gorm:"default:0" json:"points_required"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserBadge records a badge award. At most one row per (user, badge);
// awards are written with an on-conflict-do-nothing upsert so retries
// and races stay idempotent.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_user_badge_once;not null" json:"user_id"`
	BadgeID   uint      `gorm:"uniqueIndex:uq_user_badge_once;not null" json:"badge_id"`
	Badge     Badge     `gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE" json:"badge"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
}
