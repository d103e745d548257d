package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_Activity(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name  string
		query string
		total int
	}{
		{"default limit", "", 4},
		{"limit", "?limit=2", 2},
		{"type filter", "?type=payment", 1},
		{"unknown type", "?type=refund", 0},
		{"negative limit uses default", "?limit=-5", 4},
		{"garbage limit uses default", "?limit=abc", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/v1/admin/activity"+tt.query, "", true)
			require.Equal(t, http.StatusOK, w.Code)

			body := decodeJSON(t, w)
			assert.Equal(t, float64(tt.total), body["total"])
			assert.Len(t, body["activities"], tt.total)
		})
	}

	w := s.do(http.MethodGet, "/api/v1/admin/activity", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_Dashboard(t *testing.T) {
	s := setupTestServer(t)

	t.Run("json", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/admin/dashboard", "", true)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeJSON(t, w)
		totals := body["totals"].(map[string]any)
		assert.Equal(t, float64(6), totals["regions"])
		assert.Equal(t, float64(3), totals["courses"])
		assert.Len(t, body["regions"], 6)
	})

	t.Run("html", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/admin/dashboard?format=html", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Precios por región")
	})

	t.Run("html via accept header", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/admin/dashboard", "", true, withHeader("Accept", "text/html"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})
}
