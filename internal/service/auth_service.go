package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt only hashes the first 72 bytes of input; longer passwords are
// truncated the same way on hash and verify so legacy values keep
// working.
const maxPasswordBytes = 72

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(truncatePassword(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    normalizeOptional(input.FirstName),
		LastName:     normalizeOptional(input.LastName),
		Address:      normalizeOptional(input.Address),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The pre-check above races with concurrent signups for the
		// same email; the unique index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response for unknown email and wrong password.
			return nil, fmt.Errorf("%w: incorrect email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncatePassword(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: incorrect email or password", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:     signed,
		TokenType:       "bearer",
		ProfileComplete: user.IsProfileComplete(),
		UserID:          user.ID,
	}, nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func normalizeOptional(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
