package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

const (
	DefaultSessionTTL = 30 * 24 * time.Hour

	demoUserID      = "1"
	demoUserName    = "Demo User"
	demoAvatarURL   = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100"
	demoCredits     = 1000
	demoLevel       = 1
	demoTheme       = "auto"
	demoLanguage    = "es"
	demoPersonality = "friendly"
)

// AuthService issues stateless demo sessions. Any well-formed email logs in;
// the token is the base64 claims followed by their HMAC-SHA256.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type sessionClaims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

func (s *AuthService) Login(email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &validationErr{field: "email", message: "is required"}
	}

	expiresAt := s.now().Add(s.ttl).UTC().Truncate(time.Second)
	claims := sessionClaims{Subject: demoUserID, Email: email, ExpiresAt: expiresAt.Unix()}

	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)

	return &Session{
		Token:     payload + "." + s.sign(payload),
		ExpiresAt: expiresAt,
		User:      demoProfile(claims),
	}, nil
}

// Verify checks the token signature and expiry and returns the session user.
func (s *AuthService) Verify(token string) (*model.User, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return nil, fmt.Errorf("%w: malformed token", ErrUnauthorized)
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return nil, fmt.Errorf("%w: bad signature", ErrUnauthorized)
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	var claims sessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !s.now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	user := demoProfile(claims)
	return &user, nil
}

func (s *AuthService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func demoProfile(claims sessionClaims) model.User {
	return model.User{
		ID:                claims.Subject,
		Email:             claims.Email,
		FullName:          demoUserName,
		AvatarURL:         demoAvatarURL,
		Credits:           demoCredits,
		Level:             demoLevel,
		Theme:             demoTheme,
		Language:          demoLanguage,
		MentorPersonality: demoPersonality,
	}
}
