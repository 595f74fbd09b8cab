package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{"banned", NewBannedError(), fiber.StatusForbidden},
		{"not admin", NewNotAdminError(), fiber.StatusForbidden},
		{"not found", NewNotFoundError("Trick", 7), fiber.StatusNotFound},
		{"conflict", NewConflictError("Email already registered"), fiber.StatusConflict},
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"invalid operation", NewInvalidOperationError("no self likes"), fiber.StatusBadRequest},
		{"rate limited", NewRateLimitedError(), fiber.StatusTooManyRequests},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("db down")
	err := NewInternalError(inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "db down")
}
