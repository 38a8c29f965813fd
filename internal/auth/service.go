package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"libraryapi/internal/platform/crypto" // JWT/Password helpers
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = 30 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Token is the credential handed to a client after a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	secret string
	ttl    time.Duration
	users  UserStore
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used to issue and check tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, ttl time.Duration, users UserStore, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &Service{
		secret: secret,
		ttl:    ttl,
		users:  users,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the password against the stored hash and issues a token.
// Unknown users are compared against a dummy hash so both failure paths
// cost one bcrypt comparison.
func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return Token{}, fmt.Errorf("lookup user: %w", err)
		}
		crypto.VerifyPassword(DefaultAdminHash, password)
		return Token{}, ErrInvalidCredentials
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return Token{}, ErrInvalidCredentials
	}

	now := s.now()
	accessToken, _, err := crypto.GenerateToken(s.secret, u.Username, now, s.ttl)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
		ExpiresAt:   now.Add(s.ttl).UTC(),
	}, nil
}

// Verify returns the username a valid token was issued for.
func (s *Service) Verify(token string) (string, error) {
	claims, err := crypto.ParseToken(s.secret, token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
