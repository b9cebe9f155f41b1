package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision outcomes produced by the classification flow.
const (
	DecisionRecycle        = "Recycle"
	DecisionNotRecyclable  = "Not Recyclable"
	DecisionSpecialDropoff = "Special Drop-off"
)

// ScanEvent is one classification action against an item. Rows are
// append-only: every derived metric (points, streaks, leaderboard) is
// computed forward from this table, never written back into it.
// UserID is nullable so events survive account deletion.
type ScanEvent struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"user_id,omitempty"`
	ItemName          string     `gorm:"size:200" json:"item_name"`
	PredictedMaterial string     `gorm:"size:50" json:"predicted_material"`
	Confidence        float64    `json:"confidence"`
	Decision          string     `gorm:"size:30" json:"decision"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (s *ScanEvent) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
