package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"libraryapi/internal/auth"
)

// Config holds the runtime settings of the API server.
type Config struct {
	Addr            string
	JWTSecret       string
	TokenTTL        time.Duration
	Users           map[string]string // username -> bcrypt hash
	AllowedOrigins  []string
	MaxBodyBytes    int64
	EnableHSTS      bool
	LogLevel        slog.Level
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment. JWT_SECRET is required.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("missing required environment variable: JWT_SECRET"))
	}

	var err error
	if cfg.Users, err = parseUsers(getEnv("AUTH_USERS", "admin:"+auth.DefaultAdminHash)); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES: must be a positive integer"))
	}
	if cfg.EnableHSTS, err = strconv.ParseBool(getEnv("ENABLE_HSTS", "false")); err != nil {
		errs = append(errs, fmt.Errorf("ENABLE_HSTS: %w", err))
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"TOKEN_TTL", "30m", &cfg.TokenTTL},
		{"READ_TIMEOUT", "5s", &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", "10s", &cfg.WriteTimeout},
		{"IDLE_TIMEOUT", "60s", &cfg.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil || v <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be a positive duration", d.key))
			continue
		}
		*d.dst = v
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseUsers reads "name:hash,name:hash". Bcrypt hashes contain no commas,
// and the first colon separates the name.
func parseUsers(s string) (map[string]string, error) {
	users := make(map[string]string)
	for _, entry := range splitList(s) {
		name, hash, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || !strings.HasPrefix(hash, "$2") {
			return nil, fmt.Errorf("AUTH_USERS: malformed entry %q, want username:bcrypthash", name)
		}
		users[name] = hash
	}
	if len(users) == 0 {
		return nil, errors.New("AUTH_USERS: no users configured")
	}
	return users, nil
}
