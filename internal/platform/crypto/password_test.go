package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	t.Run("verify", func(t *testing.T) {
		assert.True(t, VerifyPassword(hash, "Secret123!"))
		assert.False(t, VerifyPassword(hash, "secret123!"))
		assert.False(t, VerifyPassword("not-a-hash", "Secret123!"))
	})

	t.Run("salted", func(t *testing.T) {
		hash2, err := HashPassword("Secret123!")
		require.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.True(t, VerifyPassword(hash2, "Secret123!"))
	})
}

func TestVerifyPassword_2bPrefix(t *testing.T) {
	// $2b$ hashes produced by other bcrypt implementations verify too.
	const hash = "$2b$12$EixZaYVK1fsbw1ZfbX3OXePaWxn96p36WQoeG6Lruj3vjPGga31lW"
	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "Secret"))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"Test123!@#", nil},
		{"SecureP@ss1", nil},
		{"Str0ng#Pass", nil},
		{"Test1!", ErrPasswordTooShort},
		{"Aa1!" + strings.Repeat("x", 69), ErrPasswordTooLong},
		{"test123!@#", ErrPasswordNoUpper},
		{"TEST123!@#", ErrPasswordNoLower},
		{"TestPass!@#", ErrPasswordNoNumber},
		{"TestPass123", ErrPasswordNoSpecialChar},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePasswordStrength(tt.password))
		})
	}
}
