package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/auth"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, map[string]string{"admin": auth.DefaultAdminHash}, cfg.Users)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.EnableHSTS)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "5m")
	t.Setenv("AUTH_USERS", "alice:$2a$10$abc, bob:$2b$12$def")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, map[string]string{"alice": "$2a$10$abc", "bob": "$2b$12$def"}, cfg.Users)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.True(t, cfg.EnableHSTS)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad ttl", map[string]string{"TOKEN_TTL": "soon"}, "TOKEN_TTL"},
		{"negative timeout", map[string]string{"READ_TIMEOUT": "-1s"}, "READ_TIMEOUT"},
		{"user without hash", map[string]string{"AUTH_USERS": "alice"}, "AUTH_USERS"},
		{"plaintext password", map[string]string{"AUTH_USERS": "alice:hunter2"}, "AUTH_USERS"},
		{"bad body limit", map[string]string{"MAX_BODY_BYTES": "0"}, "MAX_BODY_BYTES"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("JWT_SECRET=from_file\nAPP_ADDR=:7070\n"), 0o644))

	t.Setenv("JWT_SECRET", "from_env")
	t.Setenv("APP_ADDR", "")
	os.Unsetenv("APP_ADDR")

	t.Chdir(tmp)
	LoadEnvFiles()
	t.Cleanup(func() { _ = os.Unsetenv("APP_ADDR") })

	assert.Equal(t, "from_env", os.Getenv("JWT_SECRET"))
	assert.Equal(t, ":7070", os.Getenv("APP_ADDR"))
}

func TestLoadEnvFiles_SingleQuotedHashKeepsDollarSigns(t *testing.T) {
	tmp := t.TempDir()
	line := "AUTH_USERS='admin:" + auth.DefaultAdminHash + "'\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte(line), 0o644))

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_USERS", "")
	os.Unsetenv("AUTH_USERS")
	t.Cleanup(func() { _ = os.Unsetenv("AUTH_USERS") })

	t.Chdir(tmp)
	LoadEnvFiles()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"admin": auth.DefaultAdminHash}, cfg.Users)
}
