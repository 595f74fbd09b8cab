package service

import (
	"context"
	"testing"

	"bmxhive/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ticketRepoStub is a stub for repository.TicketRepository.
type ticketRepoStub struct {
	createFn func(context.Context, *models.Ticket) error
	listFn   func(context.Context, int, int) ([]models.Ticket, error)
}

func (s *ticketRepoStub) Create(ctx context.Context, ticket *models.Ticket) error {
	return s.createFn(ctx, ticket)
}
func (s *ticketRepoStub) List(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	return s.listFn(ctx, limit, offset)
}

func noopTicketRepo() *ticketRepoStub {
	return &ticketRepoStub{
		createFn: func(_ context.Context, t *models.Ticket) error {
			t.ID = 1
			return nil
		},
		listFn: func(_ context.Context, _, _ int) ([]models.Ticket, error) { return nil, nil },
	}
}

// contentRepoStub is a stub for repository.AdminContentRepository.
type contentRepoStub struct {
	createFn  func(context.Context, *models.AdminContent) error
	getByIDFn func(context.Context, uint) (*models.AdminContent, error)
	listFn    func(context.Context, string, int, int) ([]models.AdminContent, error)
	deleteFn  func(context.Context, uint) error
}

func (s *contentRepoStub) Create(ctx context.Context, content *models.AdminContent) error {
	return s.createFn(ctx, content)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.AdminContent, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) List(ctx context.Context, contentType string, limit, offset int) ([]models.AdminContent, error) {
	return s.listFn(ctx, contentType, limit, offset)
}
func (s *contentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		createFn: func(_ context.Context, c *models.AdminContent) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.AdminContent, error) {
			return &models.AdminContent{ID: id}, nil
		},
		listFn:   func(_ context.Context, _ string, _, _ int) ([]models.AdminContent, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func newModerationService(userRepo *userRepoStub, trickRepo *trickRepoStub) *ModerationService {
	return NewModerationService(userRepo, trickRepo, noopTicketRepo(), noopContentRepo())
}

func TestSetUserBannedRejectsSelf(t *testing.T) {
	svc := newModerationService(noopUserRepo(), noopTrickRepo())

	_, err := svc.SetUserBanned(context.Background(), 5, 5, true)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
	assert.Equal(t, "You cannot ban yourself", appErr.Message)
}

func TestSetUserBannedMissingTarget(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := newModerationService(userRepo, noopTrickRepo())

	_, err := svc.SetUserBanned(context.Background(), 1, 99, true)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestSetUserBannedPropagates(t *testing.T) {
	userRepo := noopUserRepo()
	var gotID uint
	var gotBanned bool
	userRepo.setBannedFn = func(_ context.Context, id uint, banned bool) error {
		gotID = id
		gotBanned = banned
		return nil
	}
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Email: "rider@x.com", Banned: gotBanned}, nil
	}
	svc := newModerationService(userRepo, noopTrickRepo())

	view, err := svc.SetUserBanned(context.Background(), 1, 7, true)
	require.NoError(t, err)
	assert.Equal(t, uint(7), gotID)
	assert.True(t, gotBanned)
	assert.Equal(t, uint(7), view.ID)
	assert.True(t, view.Banned)

	view, err = svc.SetUserBanned(context.Background(), 1, 7, false)
	require.NoError(t, err)
	assert.False(t, gotBanned)
	assert.False(t, view.Banned)
}

func TestListUsersNameFallbacks(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.listFn = func(_ context.Context, _, _ int) ([]models.User, error) {
		return []models.User{
			{ID: 1, Email: "a@x.com", Profile: &models.Profile{Name: "Profile Name", Points: 30}},
			{ID: 2, Email: "b@x.com", Name: "Account Name"},
			{ID: 3, Email: "c@x.com", Profile: &models.Profile{Name: "  "}},
			{ID: 4, Email: "d@x.com", Role: models.RoleAdmin},
		}, nil
	}
	svc := newModerationService(userRepo, noopTrickRepo())

	views, err := svc.ListUsers(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, "Profile Name", views[0].Name)
	assert.Equal(t, 30, views[0].Points)
	assert.Equal(t, "Account Name", views[1].Name)
	assert.Equal(t, DefaultUserDisplayName, views[2].Name)
	assert.Equal(t, DefaultUserDisplayName, views[3].Name)
	assert.True(t, views[3].Admin)
}

func TestFileTicketValidation(t *testing.T) {
	trickRepo := noopTrickRepo()
	trickRepo.getByIDFn = func(_ context.Context, id uint) (*models.Trick, error) {
		if id == 404 {
			return nil, models.NewNotFoundError("Trick", id)
		}
		return &models.Trick{ID: id}, nil
	}
	svc := newModerationService(noopUserRepo(), trickRepo)
	ctx := context.Background()

	_, err := svc.FileTicket(ctx, FileTicketInput{ReporterID: 1, TrickID: 2, Reason: "  "})
	require.Error(t, err)

	_, err = svc.FileTicket(ctx, FileTicketInput{ReporterID: 1, TrickID: 404, Reason: "spam"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	ticket, err := svc.FileTicket(ctx, FileTicketInput{ReporterID: 1, TrickID: 2, Reason: " spam "})
	require.NoError(t, err)
	assert.Equal(t, "spam", ticket.Reason)
	assert.Equal(t, uint(1), ticket.ReporterID)
}

func TestPublishContentValidation(t *testing.T) {
	svc := newModerationService(noopUserRepo(), noopTrickRepo())
	ctx := context.Background()

	_, err := svc.PublishContent(ctx, CreateContentInput{AdminID: 1, Title: "", Body: "text"})
	require.Error(t, err)

	_, err = svc.PublishContent(ctx, CreateContentInput{AdminID: 1, Title: "Guide", Body: ""})
	require.Error(t, err)

	_, err = svc.PublishContent(ctx, CreateContentInput{AdminID: 1, Title: "Guide", Body: "text", Type: "podcast"})
	require.Error(t, err)

	content, err := svc.PublishContent(ctx, CreateContentInput{AdminID: 1, Title: "Guide", Body: "text"})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeGuide, content.Type)
	require.NotNil(t, content.CreatedBy)
	assert.Equal(t, uint(1), *content.CreatedBy)
}
