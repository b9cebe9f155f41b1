package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/model"
	"github.com/ecosort/ecosort-backend/internal/repository"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/ecosort/ecosort-backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvatarFile is an uploaded avatar image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type ProfileService interface {
	// GetProfile composes identity fields with computed stats. Stats
	// failures degrade to zeros; the profile screen must render even
	// when aggregates are briefly unavailable.
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput, avatar *AvatarFile) (*dto.ProfileResponse, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, input dto.CompleteProfileInput) (*dto.CompleteProfileResponse, error)
	CheckProfileStatus(ctx context.Context, userID uuid.UUID) (*dto.ProfileStatusResponse, error)
}

type profileService struct {
	repo         repository.UserRepository
	progress     ProgressService
	imageStorage storage.ImageStorage
}

func NewProfileService(repo repository.UserRepository, progress ProgressService, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		repo:         repo,
		progress:     progress,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfileResponse(ctx, user), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput, avatar *AvatarFile) (*dto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.FirstName != nil {
		user.FirstName = normalizeOptional(input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = normalizeOptional(input.LastName)
	}
	if input.Address != nil {
		user.Address = normalizeOptional(input.Address)
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}

		// Best effort cleanup of the replaced image; orphans only cost
		// storage.
		if user.AvatarURL != nil && *user.AvatarURL != url {
			if err := s.imageStorage.DeleteImage(ctx, *user.AvatarURL); err != nil {
				log.Printf("failed to delete replaced avatar for user %s: %v", user.ID, err)
			}
		}

		user.AvatarURL = &url
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.buildProfileResponse(ctx, user), nil
}

func (s *profileService) CompleteProfile(ctx context.Context, userID uuid.UUID, input dto.CompleteProfileInput) (*dto.CompleteProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = &input.FirstName
	user.LastName = &input.LastName
	user.Address = &input.Address
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.CompleteProfileResponse{
		Message:         "profile completed",
		ProfileComplete: user.IsProfileComplete(),
		User:            *s.buildProfileResponse(ctx, user),
	}, nil
}

func (s *profileService) CheckProfileStatus(ctx context.Context, userID uuid.UUID) (*dto.ProfileStatusResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileStatusResponse{
		ProfileComplete: user.IsProfileComplete(),
		MissingFields:   user.MissingProfileFields(),
	}, nil
}

func (s *profileService) findUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) buildProfileResponse(ctx context.Context, user *model.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
		AvatarURL: user.AvatarURL,
		Level:     "Beginner",
		CreatedAt: user.CreatedAt,
	}

	stats, err := s.progress.GetStats(ctx, user.ID, time.Now())
	if err != nil {
		log.Printf("profile stats lookup failed for user %s, degrading to zero: %v", user.ID, err)
		return resp
	}

	resp.TotalScans = stats.ItemsScanned
	resp.CO2Saved = stats.CO2SavedKg
	resp.Level = stats.CurrentLevel
	return resp
}
