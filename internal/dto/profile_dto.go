package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name      *string `json:"name" form:"name"`
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
	Address   *string `json:"address" form:"address"`
}

type CompleteProfileInput struct {
	FirstName string  `json:"first_name" binding:"required,max=120"`
	LastName  string  `json:"last_name" binding:"required,max=120"`
	Address   string  `json:"address" binding:"required"`
	Name      *string `json:"name"`
}

// ProfileResponse composes identity fields with computed stats for the
// profile screen. The stats are presentation-only here; the rewards
// endpoints are the authoritative read path for gamification.
type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Address    *string   `json:"address,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	TotalScans int64     `json:"total_scans"`
	CO2Saved   float64   `json:"co2_saved"`
	Level      string    `json:"level"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProfileStatusResponse struct {
	ProfileComplete bool     `json:"profile_complete"`
	MissingFields   []string `json:"missing_fields"`
}

type CompleteProfileResponse struct {
	Message         string          `json:"message"`
	ProfileComplete bool            `json:"profile_complete"`
	User            ProfileResponse `json:"user"`
}
