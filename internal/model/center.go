package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecyclingCenter is a directory entry for a physical drop-off
// location. Searchable through the meilisearch "centers" index.
type RecyclingCenter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Website   string    `gorm:"type:text" json:"website,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *RecyclingCenter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
