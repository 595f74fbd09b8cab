package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bmxhive/internal/config"
	"bmxhive/internal/models"
	"bmxhive/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTrickRepository is a mock of the TrickRepository interface
type MockTrickRepository struct {
	mock.Mock
}

func (m *MockTrickRepository) Create(ctx context.Context, trick *models.Trick) error {
	args := m.Called(ctx, trick)
	return args.Error(0)
}

func (m *MockTrickRepository) GetByID(ctx context.Context, id uint) (*models.Trick, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trick), args.Error(1)
}

func (m *MockTrickRepository) List(ctx context.Context, level string) ([]models.Trick, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trick), args.Error(1)
}

func (m *MockTrickRepository) ListForAdmin(ctx context.Context, limit, offset int) ([]models.Trick, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trick), args.Error(1)
}

func (m *MockTrickRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrickRepository) ToggleLike(ctx context.Context, trickID, userID uint) (*models.LikeResult, error) {
	args := m.Called(ctx, trickID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LikeResult), args.Error(1)
}

// trickTestServer wires a Server whose auth middleware is replaced by a
// stub that injects the given identity.
func trickTestServer(trickRepo *MockTrickRepository, identity models.Identity) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{
		config:    &config.Config{JWTSecret: testSecret},
		trickRepo: trickRepo,
	}
	s.trickService = service.NewTrickService(trickRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", identity.ID)
		c.Locals("identity", identity)
		return c.Next()
	})
	return app, s
}

func TestGetTricks(t *testing.T) {
	trickRepo := new(MockTrickRepository)
	app, s := trickTestServer(trickRepo, models.Identity{ID: 1})
	app.Get("/tricks", s.GetTricks)

	trickRepo.On("List", mock.Anything, "").Return([]models.Trick{
		{ID: 2, Title: "Tailwhip", AuthorName: "Anonymous", LikeCount: 3},
		{ID: 1, Title: "Bunny Hop", AuthorName: "Mat"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tricks", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tricks []models.Trick
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tricks))
	require.Len(t, tricks, 2)
	assert.Equal(t, "Tailwhip", tricks[0].Title)
	assert.Equal(t, 3, tricks[0].LikeCount)
}

func TestGetTricksRejectsUnknownLevel(t *testing.T) {
	trickRepo := new(MockTrickRepository)
	app, s := trickTestServer(trickRepo, models.Identity{ID: 1})
	app.Get("/tricks", s.GetTricks)

	req := httptest.NewRequest(http.MethodGet, "/tricks?level=expert", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	trickRepo.AssertNotCalled(t, "List")
}

func TestCreateTrick(t *testing.T) {
	trickRepo := new(MockTrickRepository)
	app, s := trickTestServer(trickRepo, models.Identity{ID: 4})
	app.Post("/tricks", s.CreateTrick)

	trickRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Trick).ID = 10
	})
	trickRepo.On("GetByID", mock.Anything, uint(10)).Return(&models.Trick{
		ID: 10, UserID: 4, Title: "Barspin", Level: "advanced", AuthorName: "Anonymous",
	}, nil)

	resp := postJSON(t, app, "/tricks", map[string]any{
		"title":    "Barspin",
		"level":    "advanced",
		"hashtags": []string{"#BMX"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var trick models.Trick
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trick))
	assert.Equal(t, uint(10), trick.ID)
	assert.Equal(t, uint(4), trick.UserID)
}

func TestToggleLikeHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(*MockTrickRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "like lands",
			path: "/tricks/7/like",
			mockSetup: func(repo *MockTrickRepository) {
				repo.On("ToggleLike", mock.Anything, uint(7), uint(3)).
					Return(&models.LikeResult{
						Trick:        models.Trick{ID: 7, Title: "Tailwhip", LikeCount: 4},
						Liked:        true,
						AuthorPoints: 4,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing trick",
			path: "/tricks/99/like",
			mockSetup: func(repo *MockTrickRepository) {
				repo.On("ToggleLike", mock.Anything, uint(99), uint(3)).
					Return(nil, models.NewNotFoundError("Trick", 99))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   models.CodeNotFound,
		},
		{
			name: "own trick",
			path: "/tricks/7/like",
			mockSetup: func(repo *MockTrickRepository) {
				repo.On("ToggleLike", mock.Anything, uint(7), uint(3)).
					Return(nil, models.NewInvalidOperationError("You cannot like your own trick"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeInvalidOperation,
		},
		{
			name:           "bad id",
			path:           "/tricks/abc/like",
			mockSetup:      func(_ *MockTrickRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trickRepo := new(MockTrickRepository)
			app, s := trickTestServer(trickRepo, models.Identity{ID: 3})
			app.Post("/tricks/:id/like", s.ToggleLike)

			tt.mockSetup(trickRepo)
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedCode != "" {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Code)
			}
		})
	}
}

// The like response carries the whole refreshed trick, not just the
// counters, so clients can re-render the card without a second fetch.
func TestToggleLikeReturnsRefreshedTrick(t *testing.T) {
	trickRepo := new(MockTrickRepository)
	app, s := trickTestServer(trickRepo, models.Identity{ID: 3})
	app.Post("/tricks/:id/like", s.ToggleLike)

	trickRepo.On("ToggleLike", mock.Anything, uint(7), uint(3)).Return(&models.LikeResult{
		Trick: models.Trick{
			ID:         7,
			UserID:     2,
			Title:      "Tailwhip",
			Level:      "advanced",
			AuthorName: "Mat",
			LikeCount:  4,
			LikerIDs:   []uint{1, 5, 9, 3},
		},
		Liked:        true,
		AuthorPoints: 4,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/tricks/7/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Tailwhip", body["title"])
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(4), body["likes"])
	assert.Equal(t, "Mat", body["author_name"])
	assert.ElementsMatch(t, []any{float64(1), float64(5), float64(9), float64(3)}, body["liked_by"])
}
