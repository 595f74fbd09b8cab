package repository

import (
	"context"
	"time"

	"bmxhive/internal/models"
	"bmxhive/internal/observability"

	"gorm.io/gorm"
)

// TicketRepository defines persistence operations for content reports.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	List(ctx context.Context, limit, offset int) ([]models.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository returns a new TicketRepository implementation.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	defer observability.ObserveQuery("insert", "tickets", time.Now())

	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ticketRepository) List(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	defer observability.ObserveQuery("select", "tickets", time.Now())

	var tickets []models.Ticket
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tickets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tickets, nil
}
