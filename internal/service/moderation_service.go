package service

import (
	"context"
	"strings"

	"bmxhive/internal/models"
	"bmxhive/internal/observability"
	"bmxhive/internal/repository"
)

// DefaultUserDisplayName is shown in the admin user list when an account
// has neither a profile name nor an account name.
const DefaultUserDisplayName = "Unnamed User"

// ModerationService owns admin-only operations: post removal, user bans,
// report triage and site content.
type ModerationService struct {
	userRepo    repository.UserRepository
	trickRepo   repository.TrickRepository
	ticketRepo  repository.TicketRepository
	contentRepo repository.AdminContentRepository
}

// AdminUserView is the flattened row shown in the admin user list.
type AdminUserView struct {
	ID     uint            `json:"id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	Admin  bool            `json:"is_admin"`
	Banned bool            `json:"banned"`
	Points int             `json:"points"`
}

// CreateContentInput carries the payload for publishing site content.
type CreateContentInput struct {
	AdminID     uint
	Title       string
	Description string
	Body        string
	Type        string
}

// FileTicketInput carries a user's report against a trick.
type FileTicketInput struct {
	ReporterID uint
	TrickID    uint
	Reason     string
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	userRepo repository.UserRepository,
	trickRepo repository.TrickRepository,
	ticketRepo repository.TicketRepository,
	contentRepo repository.AdminContentRepository,
) *ModerationService {
	return &ModerationService{
		userRepo:    userRepo,
		trickRepo:   trickRepo,
		ticketRepo:  ticketRepo,
		contentRepo: contentRepo,
	}
}

// ListPosts returns the moderation view of the forum, newest first.
func (s *ModerationService) ListPosts(ctx context.Context, limit, offset int) ([]models.Trick, error) {
	return s.trickRepo.ListForAdmin(ctx, limit, offset)
}

// DeletePost removes a trick and its likes. Deleting an already-removed
// trick is NOT_FOUND, not a silent success.
func (s *ModerationService) DeletePost(ctx context.Context, trickID uint) error {
	if err := s.trickRepo.Delete(ctx, trickID); err != nil {
		return err
	}
	observability.ModerationActions.WithLabelValues("delete_post").Inc()
	return nil
}

// viewForUser flattens a user row into its admin list shape, applying the
// display name and points fallbacks.
func viewForUser(u *models.User) AdminUserView {
	name := ""
	if u.Profile != nil {
		name = strings.TrimSpace(u.Profile.Name)
	}
	if name == "" {
		name = strings.TrimSpace(u.Name)
	}
	if name == "" {
		name = DefaultUserDisplayName
	}
	points := u.Points
	if u.Profile != nil {
		points = u.Profile.Points
	}
	return AdminUserView{
		ID:     u.ID,
		Email:  u.Email,
		Name:   name,
		Role:   u.Role,
		Admin:  u.IsAdmin(),
		Banned: u.Banned,
		Points: points,
	}
}

// ListUsers returns the admin user roster with display name fallbacks.
func (s *ModerationService) ListUsers(ctx context.Context, limit, offset int) ([]AdminUserView, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]AdminUserView, 0, len(users))
	for i := range users {
		views = append(views, viewForUser(&users[i]))
	}
	return views, nil
}

// SetUserBanned bans or unbans a user and returns the updated view.
// Admins cannot ban themselves.
func (s *ModerationService) SetUserBanned(ctx context.Context, actorID, targetID uint, banned bool) (*AdminUserView, error) {
	if actorID == targetID {
		return nil, models.NewInvalidOperationError("You cannot ban yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetBanned(ctx, targetID, banned); err != nil {
		return nil, err
	}

	action := "unban_user"
	if banned {
		action = "ban_user"
	}
	observability.ModerationActions.WithLabelValues(action).Inc()

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	view := viewForUser(user)
	return &view, nil
}

// FileTicket records a user report against an existing trick.
func (s *ModerationService) FileTicket(ctx context.Context, in FileTicketInput) (*models.Ticket, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if _, err := s.trickRepo.GetByID(ctx, in.TrickID); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		TrickID:    in.TrickID,
		ReporterID: in.ReporterID,
		Reason:     reason,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListTickets returns filed reports, newest first.
func (s *ModerationService) ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	return s.ticketRepo.List(ctx, limit, offset)
}

// PublishContent creates a guide, news or tutorial entry.
func (s *ModerationService) PublishContent(ctx context.Context, in CreateContentInput) (*models.AdminContent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.Type))
	if contentType == "" {
		contentType = models.ContentTypeGuide
	}
	switch contentType {
	case models.ContentTypeGuide, models.ContentTypeNews, models.ContentTypeTutorial:
	default:
		return nil, models.NewValidationError("Type must be guide, news or tutorial")
	}

	adminID := in.AdminID
	content := &models.AdminContent{
		Title:       title,
		Description: in.Description,
		Body:        in.Body,
		Type:        contentType,
		CreatedBy:   &adminID,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}
	observability.ModerationActions.WithLabelValues("publish_content").Inc()
	return content, nil
}

// ListContent returns published site content, optionally filtered by type.
func (s *ModerationService) ListContent(ctx context.Context, contentType string, limit, offset int) ([]models.AdminContent, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	switch contentType {
	case "", models.ContentTypeGuide, models.ContentTypeNews, models.ContentTypeTutorial:
	default:
		return nil, models.NewValidationError("Type must be guide, news or tutorial")
	}
	return s.contentRepo.List(ctx, contentType, limit, offset)
}

// DeleteContent removes a site content entry.
func (s *ModerationService) DeleteContent(ctx context.Context, id uint) error {
	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.ModerationActions.WithLabelValues("delete_content").Inc()
	return nil
}
