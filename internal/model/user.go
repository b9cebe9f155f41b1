package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	FirstName    *string   `gorm:"size:120" json:"first_name,omitempty"`
	LastName     *string   `gorm:"size:120" json:"last_name,omitempty"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsProfileComplete reports whether first name, last name and address are
// all filled in. Signup only requires name/email/password; the app asks
// for the rest on first login.
func (u *User) IsProfileComplete() bool {
	return strPresent(u.FirstName) && strPresent(u.LastName) && strPresent(u.Address)
}

// MissingProfileFields lists the profile fields still empty, in the order
// the app displays them.
func (u *User) MissingProfileFields() []string {
	missing := []string{}
	if !strPresent(u.FirstName) {
		missing = append(missing, "first_name")
	}
	if !strPresent(u.LastName) {
		missing = append(missing, "last_name")
	}
	if !strPresent(u.Address) {
		missing = append(missing, "address")
	}
	return missing
}

func strPresent(s *string) bool {
	return s != nil && *s != ""
}
