package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func putJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parsePagination(c, 50)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=20", 10, 20},
		{"?limit=0", 50, 0},
		{"?limit=500", 100, 0},
		{"?offset=-3", 50, 0},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tt.wantLimit, got.Limit, "query=%q", tt.query)
		assert.Equal(t, tt.wantOffset, got.Offset, "query=%q", tt.query)
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "trick ID", humanizeParam("trickId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}
