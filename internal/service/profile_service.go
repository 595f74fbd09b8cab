package service

import (
	"context"
	"strings"

	"bmxhive/internal/models"
	"bmxhive/internal/repository"
	"bmxhive/internal/validation"
)

// ProfileService owns rider profile reads and self-service updates.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields. Nil pointers
// leave the stored value untouched.
type UpdateProfileInput struct {
	UserID         uint
	Name           *string
	Bio            *string
	FavoriteTricks *string
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// GetProfile returns the profile for a user, creating an empty one on the
// fly for accounts that predate the profile table.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Code != models.CodeNotFound {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile = &models.Profile{
		UserID:    user.ID,
		Name:      user.Name,
		Bio:       user.Bio,
		Points:    user.Points,
		AvatarURL: user.AvatarURL,
		Banned:    user.Banned,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validation.ValidateDisplayName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Name = name
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Bio = *in.Bio
	}
	if in.FavoriteTricks != nil {
		profile.FavoriteTricks = strings.TrimSpace(*in.FavoriteTricks)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AwardPoints adds a positive point delta to the caller's own profile.
func (s *ProfileService) AwardPoints(ctx context.Context, userID uint, delta int) (*models.Profile, error) {
	if delta <= 0 {
		return nil, models.NewValidationError("Points must be a positive number")
	}
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.profileRepo.AddPoints(ctx, userID, delta)
}

// SetAvatar records a freshly uploaded avatar URL.
func (s *ProfileService) SetAvatar(ctx context.Context, userID uint, url string) (*models.Profile, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.SetAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddTrickVideo records a freshly uploaded trick video URL.
func (s *ProfileService) AddTrickVideo(ctx context.Context, userID uint, url string) (*models.Profile, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.AppendTrickVideo(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Leaderboard returns the ranked profile listing.
func (s *ProfileService) Leaderboard(ctx context.Context, limit int) ([]models.Profile, error) {
	return s.profileRepo.Leaderboard(ctx, limit)
}
