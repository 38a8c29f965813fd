package auth

import (
	"context"
	"errors"
)

// DefaultAdminHash is the bcrypt hash of "secret", used for the built-in
// admin account when no users are configured.
const DefaultAdminHash = "$2b$12$EixZaYVK1fsbw1ZfbX3OXePaWxn96p36WQoeG6Lruj3vjPGga31lW"

var ErrUserNotFound = errors.New("user not found")

type User struct {
	Username     string
	PasswordHash string
}

// UserStore looks up the credentials of a user.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
}

// StaticUsers is a fixed user directory loaded from configuration.
type StaticUsers map[string]User

// NewStaticUsers builds a directory from username to bcrypt hash pairs.
func NewStaticUsers(hashes map[string]string) StaticUsers {
	users := make(StaticUsers, len(hashes))
	for username, hash := range hashes {
		users[username] = User{Username: username, PasswordHash: hash}
	}
	return users
}

func (s StaticUsers) GetByUsername(_ context.Context, username string) (User, error) {
	u, ok := s[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}
