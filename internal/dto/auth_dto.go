package dto

import "github.com/google/uuid"

type SignupInput struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Name      string  `json:"name" binding:"required,max=120"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Address   *string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse matches the token payload the mobile app stores:
// bearer token plus enough state to route to profile completion.
type AuthResponse struct {
	AccessToken     string    `json:"access_token"`
	TokenType       string    `json:"token_type"`
	ProfileComplete bool      `json:"profile_complete"`
	UserID          uuid.UUID `json:"user_id"`
}
