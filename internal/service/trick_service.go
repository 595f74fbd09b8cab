// Package service implements the business logic layer between HTTP
// handlers and repositories.
package service

import (
	"context"
	"strings"

	"bmxhive/internal/models"
	"bmxhive/internal/repository"
	"bmxhive/internal/validation"
)

// TrickService owns the trick forum rules: creation validation, feed
// filtering and the like toggle preconditions.
type TrickService struct {
	trickRepo repository.TrickRepository
}

// CreateTrickInput carries the payload for posting a trick.
type CreateTrickInput struct {
	UserID      uint
	Title       string
	Description string
	VideoURL    string
	Level       string
	Hashtags    []string
}

// NewTrickService creates a new TrickService.
func NewTrickService(trickRepo repository.TrickRepository) *TrickService {
	return &TrickService{trickRepo: trickRepo}
}

func (s *TrickService) CreateTrick(ctx context.Context, in CreateTrickInput) (*models.Trick, error) {
	const maxTitleLen = 200
	const maxDescriptionLen = 5000

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}

	level := strings.ToLower(strings.TrimSpace(in.Level))
	if level == "" {
		level = models.TrickLevelBeginner
	}
	switch level {
	case models.TrickLevelBeginner, models.TrickLevelAdvanced:
		// valid
	default:
		return nil, models.NewValidationError("Level must be beginner or advanced")
	}

	trick := &models.Trick{
		UserID:      in.UserID,
		Title:       title,
		Description: in.Description,
		VideoURL:    strings.TrimSpace(in.VideoURL),
		Level:       level,
		Hashtags:    validation.NormalizeHashtags(in.Hashtags),
	}
	if err := s.trickRepo.Create(ctx, trick); err != nil {
		return nil, err
	}
	return s.trickRepo.GetByID(ctx, trick.ID)
}

// ListTricks returns the feed, optionally filtered by level. An unknown
// level filter is a validation error rather than an empty result.
func (s *TrickService) ListTricks(ctx context.Context, level string) ([]models.Trick, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "", models.TrickLevelBeginner, models.TrickLevelAdvanced:
	default:
		return nil, models.NewValidationError("Level must be beginner or advanced")
	}
	return s.trickRepo.List(ctx, level)
}

func (s *TrickService) GetTrick(ctx context.Context, id uint) (*models.Trick, error) {
	return s.trickRepo.GetByID(ctx, id)
}

// ToggleLike flips the caller's like on a trick. The repository enforces
// the self-like rule and atomicity; the service only shapes the call.
func (s *TrickService) ToggleLike(ctx context.Context, trickID, userID uint) (*models.LikeResult, error) {
	if trickID == 0 {
		return nil, models.NewValidationError("Trick id is required")
	}
	return s.trickRepo.ToggleLike(ctx, trickID, userID)
}
