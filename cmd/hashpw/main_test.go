package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/platform/crypto"
)

func TestRun(t *testing.T) {
	t.Run("hash only", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(nil, strings.NewReader("Str0ng#Pass\n"), &out))

		hash := strings.TrimSpace(out.String())
		assert.True(t, crypto.VerifyPassword(hash, "Str0ng#Pass"))
	})

	t.Run("auth users entry", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-user", "alice"}, strings.NewReader("Str0ng#Pass"), &out))

		name, hash, ok := strings.Cut(strings.TrimSpace(out.String()), ":")
		require.True(t, ok)
		assert.Equal(t, "alice", name)
		assert.True(t, crypto.VerifyPassword(hash, "Str0ng#Pass"))
	})

	t.Run("dotenv line survives godotenv", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-user", "alice", "-env"}, strings.NewReader("Str0ng#Pass\n"), &out))

		env, err := godotenv.Unmarshal(out.String())
		require.NoError(t, err)

		name, hash, ok := strings.Cut(env["AUTH_USERS"], ":")
		require.True(t, ok)
		assert.Equal(t, "alice", name)
		assert.True(t, crypto.VerifyPassword(hash, "Str0ng#Pass"))
	})

	t.Run("env without user", func(t *testing.T) {
		assert.Error(t, run([]string{"-env"}, strings.NewReader("Str0ng#Pass\n"), &bytes.Buffer{}))
	})

	t.Run("weak password rejected", func(t *testing.T) {
		err := run(nil, strings.NewReader("secret\n"), &bytes.Buffer{})
		assert.ErrorIs(t, err, crypto.ErrPasswordTooShort)
	})

	t.Run("weak password allowed", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-allow-weak"}, strings.NewReader("secret\n"), &out))
		assert.True(t, crypto.VerifyPassword(strings.TrimSpace(out.String()), "secret"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Error(t, run(nil, strings.NewReader(""), &bytes.Buffer{}))
	})
}
