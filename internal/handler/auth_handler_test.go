package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"x"}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, float64(1000), user["credits"])
	assert.Equal(t, "es", user["language"])

	_, err := s.auth.Verify(token)
	assert.NoError(t, err)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	s := setupTestServer(t)

	for _, body := range []string{`{}`, `{"email":"not-an-email"}`, `{"email":`} {
		w := s.do(http.MethodPost, "/api/v1/auth/login", body, false)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/auth/session", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo@aiclases.com", decodeJSON(t, w)["user"].(map[string]any)["email"])

	w = s.do(http.MethodGet, "/api/v1/auth/session", "", false, withHeader("Authorization", "Bearer forged.token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
