package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndVerify(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	session, err := svc.Login("  demo@aiclases.com ", "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "demo@aiclases.com", session.User.Email)
	assert.Equal(t, 1000, session.User.Credits)
	assert.Equal(t, 1, session.User.Level)
	assert.Equal(t, "es", session.User.Language)

	user, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, *user)
}

func TestAuthService_LoginRequiresEmail(t *testing.T) {
	_, err := NewAuthService("s", 0).Login("  ", "x")
	field, _, ok := ValidationField(err)
	require.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestAuthService_VerifyRejects(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	session, err := svc.Login("demo@aiclases.com", "")
	require.NoError(t, err)

	payload, sig, _ := strings.Cut(session.Token, ".")

	tests := []struct {
		name  string
		svc   *AuthService
		token string
	}{
		{"empty", svc, ""},
		{"no separator", svc, payload},
		{"tampered payload", svc, payload + "x." + sig},
		{"tampered signature", svc, payload + "." + sig + "x"},
		{"other secret", NewAuthService("other", time.Hour), session.Token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Verify(tt.token)
			assert.True(t, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestAuthService_Expiry(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	session, err := svc.Login("demo@aiclases.com", "")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), session.ExpiresAt)

	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = svc.Verify(session.Token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = svc.Verify(session.Token)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
