package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bmxhive/internal/config"
	"bmxhive/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signedToken(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func guardedApp(t *testing.T, userRepo *MockUserRepository, guards ...func(*Server) fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	s := &Server{
		config:   &config.Config{JWTSecret: testSecret},
		userRepo: userRepo,
	}

	handlers := []fiber.Handler{s.AuthRequired()}
	for _, g := range guards {
		handlers = append(handlers, g(s))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(s.identity(c))
	})
	app.Get("/protected", handlers...)
	return app
}

func getWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	liveUser := &models.User{ID: 1, Email: "rider@x.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		token          func(t *testing.T) string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name:           "missing token",
			token:          func(_ *testing.T) string { return "" },
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			token:          func(_ *testing.T) string { return "not.a.jwt" },
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signedToken(t, func(c jwt.MapClaims) {
					c["exp"] = time.Now().Add(-time.Hour).Unix()
				})
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				return signedToken(t, func(c jwt.MapClaims) { c["iss"] = "someone-else" })
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				return signedToken(t, func(c jwt.MapClaims) { c["aud"] = "other-client" })
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:  "deleted account",
			token: func(t *testing.T) string { return signedToken(t, nil) },
			mockSetup: func(users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(nil, models.NewNotFoundError("User", 1))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:  "valid token and live user",
			token: func(t *testing.T) string { return signedToken(t, nil) },
			mockSetup: func(users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(liveUser, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.mockSetup(userRepo)
			app := guardedApp(t, userRepo)

			resp := getWithToken(t, app, tt.token(t))
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// Ban and role state come from the live database read, so a stale token
// issued before a ban stops working on the next request.
func TestBanRequiredUsesLiveState(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Email: "rider@x.com", Role: models.RoleUser, Banned: true}, nil)

	app := guardedApp(t, userRepo, func(s *Server) fiber.Handler { return s.BanRequired() })

	resp := getWithToken(t, app, signedToken(t, nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredUsesLiveRole(t *testing.T) {
	// Token claims say admin, the database says user. The database wins.
	token := signedToken(t, func(c jwt.MapClaims) { c["role"] = "admin" })

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Email: "rider@x.com", Role: models.RoleUser}, nil)

	app := guardedApp(t, userRepo, func(s *Server) fiber.Handler { return s.AdminRequired() })

	resp := getWithToken(t, app, token)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Email: "admin@gmail.com", Role: models.RoleAdmin}, nil)

	app := guardedApp(t, userRepo, func(s *Server) fiber.Handler { return s.AdminRequired() })

	resp := getWithToken(t, app, signedToken(t, nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
