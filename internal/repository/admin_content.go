package repository

import (
	"context"
	"errors"
	"time"

	"bmxhive/internal/models"
	"bmxhive/internal/observability"

	"gorm.io/gorm"
)

// AdminContentRepository defines persistence operations for site content
// authored by admins (guides, news, tutorials).
type AdminContentRepository interface {
	Create(ctx context.Context, content *models.AdminContent) error
	GetByID(ctx context.Context, id uint) (*models.AdminContent, error)
	List(ctx context.Context, contentType string, limit, offset int) ([]models.AdminContent, error)
	Delete(ctx context.Context, id uint) error
}

type adminContentRepository struct {
	db *gorm.DB
}

// NewAdminContentRepository returns a new AdminContentRepository implementation.
func NewAdminContentRepository(db *gorm.DB) AdminContentRepository {
	return &adminContentRepository{db: db}
}

func (r *adminContentRepository) Create(ctx context.Context, content *models.AdminContent) error {
	defer observability.ObserveQuery("insert", "admin_content", time.Now())

	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adminContentRepository) GetByID(ctx context.Context, id uint) (*models.AdminContent, error) {
	defer observability.ObserveQuery("select", "admin_content", time.Now())

	var content models.AdminContent
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &content, nil
}

func (r *adminContentRepository) List(ctx context.Context, contentType string, limit, offset int) ([]models.AdminContent, error) {
	defer observability.ObserveQuery("select", "admin_content", time.Now())

	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if contentType != "" {
		q = q.Where("type = ?", contentType)
	}

	var contents []models.AdminContent
	if err := q.Find(&contents).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return contents, nil
}

func (r *adminContentRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "admin_content", time.Now())

	res := r.db.WithContext(ctx).Delete(&models.AdminContent{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Content", id)
	}
	return nil
}
