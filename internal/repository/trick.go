package repository

import (
	"context"
	"errors"
	"time"

	"bmxhive/internal/cache"
	"bmxhive/internal/models"
	"bmxhive/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// authorColumns resolves the denormalized author display fields through the
// profile -> user -> placeholder fallback chain in a single query.
const authorColumns = "tricks.*, " +
	"COALESCE(NULLIF(profiles.name, ''), NULLIF(users.name, ''), '" + models.AnonymousAuthorName + "') AS author_name, " +
	"COALESCE(NULLIF(profiles.avatar_url, ''), NULLIF(users.avatar_url, ''), '" + models.DefaultAvatarURL + "') AS author_avatar"

// TrickRepository defines persistence operations for trick posts and likes.
type TrickRepository interface {
	Create(ctx context.Context, trick *models.Trick) error
	GetByID(ctx context.Context, id uint) (*models.Trick, error)
	List(ctx context.Context, level string) ([]models.Trick, error)
	ListForAdmin(ctx context.Context, limit, offset int) ([]models.Trick, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, trickID, userID uint) (*models.LikeResult, error)
}

type trickRepository struct {
	db *gorm.DB
}

// NewTrickRepository returns a new TrickRepository implementation.
func NewTrickRepository(db *gorm.DB) TrickRepository {
	return &trickRepository{db: db}
}

func (r *trickRepository) Create(ctx context.Context, trick *models.Trick) error {
	defer observability.ObserveQuery("insert", "tricks", time.Now())

	if err := r.db.WithContext(ctx).Create(trick).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTrickLists(ctx)
	return nil
}

func (r *trickRepository) GetByID(ctx context.Context, id uint) (*models.Trick, error) {
	defer observability.ObserveQuery("select", "tricks", time.Now())

	var trick models.Trick
	err := r.db.WithContext(ctx).
		Select(authorColumns).
		Joins("JOIN users ON users.id = tricks.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id AND profiles.deleted_at IS NULL").
		Where("tricks.id = ?", id).
		First(&trick).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trick", id)
		}
		return nil, models.NewInternalError(err)
	}

	if err := r.attachLikerIDs(ctx, []*models.Trick{&trick}); err != nil {
		return nil, err
	}
	return &trick, nil
}

// List returns the forum feed, newest first, optionally filtered by level.
// The full listing is served cache-aside; writes invalidate per level.
func (r *trickRepository) List(ctx context.Context, level string) ([]models.Trick, error) {
	defer observability.ObserveQuery("select", "tricks", time.Now())

	var tricks []models.Trick
	err := cache.Aside(ctx, cache.TrickListKey(level), &tricks, cache.TrickListTTL, func() error {
		q := r.db.WithContext(ctx).
			Select(authorColumns).
			Joins("JOIN users ON users.id = tricks.user_id").
			Joins("LEFT JOIN profiles ON profiles.user_id = users.id AND profiles.deleted_at IS NULL").
			Order("tricks.created_at DESC")
		if level != "" {
			q = q.Where("tricks.level = ?", level)
		}
		if err := q.Find(&tricks).Error; err != nil {
			return models.NewInternalError(err)
		}

		refs := make([]*models.Trick, len(tricks))
		for i := range tricks {
			refs[i] = &tricks[i]
		}
		return r.attachLikerIDs(ctx, refs)
	})
	if err != nil {
		return nil, err
	}
	if tricks == nil {
		tricks = []models.Trick{}
	}
	return tricks, nil
}

// ListForAdmin returns the uncached moderation view with pagination.
func (r *trickRepository) ListForAdmin(ctx context.Context, limit, offset int) ([]models.Trick, error) {
	defer observability.ObserveQuery("select", "tricks", time.Now())

	var tricks []models.Trick
	err := r.db.WithContext(ctx).
		Select(authorColumns).
		Joins("JOIN users ON users.id = tricks.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id AND profiles.deleted_at IS NULL").
		Order("tricks.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tricks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tricks, nil
}

func (r *trickRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "tricks", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Trick{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Trick", id)
		}
		if err := tx.Where("trick_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateTrickLists(ctx)
	return nil
}

// ToggleLike flips the (trick, user) like state in a single transaction.
// The trick row is locked first so concurrent toggles on the same trick
// serialize; the like row, the trick counter and the author's points always
// move together or not at all. After commit the trick is re-read so the
// caller gets the refreshed counters and liker list.
func (r *trickRepository) ToggleLike(ctx context.Context, trickID, userID uint) (*models.LikeResult, error) {
	defer observability.ObserveQuery("update", "tricks", time.Now())

	ctx, span := observability.StartRepositorySpan(ctx, "ToggleLike", "tricks")
	defer span.End()

	var result models.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trick models.Trick
		if err := tx.
			Clauses(lockForUpdate()).
			First(&trick, trickID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Trick", trickID)
			}
			return models.NewInternalError(err)
		}

		var existing models.Like
		err := tx.Where("trick_id = ? AND user_id = ?", trickID, userID).First(&existing).Error
		switch {
		case err == nil:
			// Unlike path: hard delete so the unique index allows re-liking.
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return models.NewInternalError(err)
			}
			result.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if trick.UserID == userID {
				return models.NewInvalidOperationError("You cannot like your own trick")
			}
			like := models.Like{TrickID: trickID, UserID: userID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
			if res.Error != nil {
				return models.NewInternalError(res.Error)
			}
			if res.RowsAffected == 0 {
				// Lost a race despite the row lock; treat as already liked.
				result.Liked = true
				return nil
			}
			result.Liked = true
		default:
			return models.NewInternalError(err)
		}

		delta := -1
		if result.Liked {
			delta = 1
		}

		count := trick.LikeCount + delta
		if count < 0 {
			count = 0
		}
		if err := tx.Model(&trick).Update("like_count", count).Error; err != nil {
			return models.NewInternalError(err)
		}

		authorPoints, err := moveAuthorPoints(tx, trick.UserID, delta)
		if err != nil {
			return err
		}
		result.AuthorPoints = authorPoints
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	state := "unliked"
	if result.Liked {
		state = "liked"
	}
	observability.LikeToggles.WithLabelValues(state).Inc()

	cache.InvalidateTrickLists(ctx)
	cache.InvalidateLeaderboard(ctx)

	refreshed, err := r.GetByID(ctx, trickID)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}
	result.Trick = *refreshed
	return &result, nil
}

// moveAuthorPoints shifts the trick author's point total by delta, floored
// at zero, keeping the profile and user rows in step. Returns the new total.
func moveAuthorPoints(tx *gorm.DB, authorID uint, delta int) (int, error) {
	var profile models.Profile
	if err := tx.
		Clauses(lockForUpdate()).
		Where("user_id = ?", authorID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Author predates profiles; points live on the user row only.
			var user models.User
			if err := tx.Clauses(lockForUpdate()).First(&user, authorID).Error; err != nil {
				return 0, models.NewInternalError(err)
			}
			points := user.Points + delta
			if points < 0 {
				points = 0
			}
			if err := tx.Model(&user).Update("points", points).Error; err != nil {
				return 0, models.NewInternalError(err)
			}
			return points, nil
		}
		return 0, models.NewInternalError(err)
	}

	points := profile.Points + delta
	if points < 0 {
		points = 0
	}
	if err := tx.Model(&profile).Update("points", points).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if err := tx.Model(&models.User{}).
		Where("id = ?", authorID).
		Update("points", points).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return points, nil
}

// attachLikerIDs loads the liker id list for each trick in one query.
func (r *trickRepository) attachLikerIDs(ctx context.Context, tricks []*models.Trick) error {
	if len(tricks) == 0 {
		return nil
	}

	ids := make([]uint, len(tricks))
	byID := make(map[uint]*models.Trick, len(tricks))
	for i, t := range tricks {
		ids[i] = t.ID
		byID[t.ID] = t
		t.LikerIDs = []uint{}
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("trick_id IN ?", ids).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, like := range likes {
		if t, ok := byID[like.TrickID]; ok {
			t.LikerIDs = append(t.LikerIDs, like.UserID)
		}
	}
	return nil
}
