package repository

import (
	"context"
	"errors"
	"time"

	"bmxhive/internal/cache"
	"bmxhive/internal/models"
	"bmxhive/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for rider profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	AddPoints(ctx context.Context, userID uint, delta int) (*models.Profile, error)
	SetAvatar(ctx context.Context, userID uint, url string) error
	AppendTrickVideo(ctx context.Context, userID uint, url string) error
	Leaderboard(ctx context.Context, limit int) ([]models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	defer observability.ObserveQuery("select", "profiles", time.Now())

	var profile models.Profile
	err := r.db.WithContext(ctx).
		Select("profiles.*, users.email AS email, users.role AS role").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer observability.ObserveQuery("insert", "profiles", time.Now())

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Profile already exists")
		}
		return models.NewInternalError(err)
	}
	profile.Derive()
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	defer observability.ObserveQuery("update", "profiles", time.Now())

	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	profile.Derive()
	cache.InvalidateLeaderboard(ctx)
	return nil
}

// AddPoints atomically moves the profile's point total by delta, flooring
// at zero, and mirrors the new total onto the owning user row. Returns the
// updated profile.
func (r *profileRepository) AddPoints(ctx context.Context, userID uint, delta int) (*models.Profile, error) {
	defer observability.ObserveQuery("update", "profiles", time.Now())

	var profile models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(lockForUpdate()).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}

		points := profile.Points + delta
		if points < 0 {
			points = 0
		}
		if err := tx.Model(&profile).Update("points", points).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", points).Error; err != nil {
			return models.NewInternalError(err)
		}
		profile.Points = points
		return nil
	})
	if err != nil {
		return nil, err
	}

	profile.Derive()
	cache.InvalidateLeaderboard(ctx)
	return &profile, nil
}

func (r *profileRepository) SetAvatar(ctx context.Context, userID uint, url string) error {
	defer observability.ObserveQuery("update", "profiles", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).Where("user_id = ?", userID).Update("avatar_url", url)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Profile", userID)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("avatar_url", url).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *profileRepository) AppendTrickVideo(ctx context.Context, userID uint, url string) error {
	defer observability.ObserveQuery("update", "profiles", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.
			Clauses(lockForUpdate()).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}
		videos := append(profile.TrickVideos, url)
		if err := tx.Model(&profile).Update("trick_videos", videos).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// leaderboardFetchLimit is the number of rows fetched and cached per
// refresh. The cache entry is shared by all callers, so it always holds the
// full board and per-request limits trim after the fact.
const leaderboardFetchLimit = 100

// Leaderboard returns profiles ranked by points descending with ties broken
// by earliest account. Position is computed in the query, cached as a unit.
func (r *profileRepository) Leaderboard(ctx context.Context, limit int) ([]models.Profile, error) {
	defer observability.ObserveQuery("select", "profiles", time.Now())

	if limit <= 0 || limit > leaderboardFetchLimit {
		limit = 50
	}

	var profiles []models.Profile
	err := cache.Aside(ctx, cache.LeaderboardKey(), &profiles, cache.LeaderboardTTL, func() error {
		if err := r.db.WithContext(ctx).
			Select("profiles.*, RANK() OVER (ORDER BY profiles.points DESC, profiles.user_id ASC) AS position").
			Order("profiles.points DESC, profiles.user_id ASC").
			Limit(leaderboardFetchLimit).
			Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if limit < len(profiles) {
		profiles = profiles[:limit]
	}

	// Cache hits bypass AfterFind, so re-derive.
	for i := range profiles {
		profiles[i].Derive()
	}
	return profiles, nil
}
