package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libraryapi/internal/auth"
	"libraryapi/internal/book"
	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/libraryclient"
)

var isbnRX = regexp.MustCompile(`^97[89]-?\d{10}$`)

func TestGenerate_FieldsWithinLimits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, f := range append(classics(), generate(rng, 200)...) {
		assert.GreaterOrEqual(t, len(f.Title), 3, f.Title)
		assert.LessOrEqual(t, len(f.Title), 200, f.Title)
		assert.GreaterOrEqual(t, len(f.Author), 2, f.Author)
		require.NotNil(t, f.Year)
		assert.GreaterOrEqual(t, *f.Year, 1000)
		assert.LessOrEqual(t, *f.Year, 2100)
		require.NotNil(t, f.ISBN)
		assert.Regexp(t, isbnRX, *f.ISBN)
	}
}

func TestRun_SeedsAPI(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := book.NewMemoryStore()
	authService := auth.NewService("seed-secret", time.Minute, auth.NewStaticUsers(map[string]string{"admin": string(hash)}))
	books := book.NewHTTPHandler(book.NewService(store))

	router := http.NewServeMux()
	router.HandleFunc("POST /login", auth.NewHTTPHandler(authService).Login)
	router.HandleFunc("GET /books", books.List)
	router.Handle("POST /books", httpx.AuthMiddleware(authService)(http.HandlerFunc(books.Create)))
	srv := httptest.NewServer(router)
	defer srv.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	client := libraryclient.NewClient(srv.URL, "seed-test", 1000, 0)

	require.NoError(t, run(context.Background(), logger, client, "admin", "secret", 5))

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(classics())+5)
	assert.Equal(t, "1984", all[0].Title)
	assert.Contains(t, logs.String(), "seed complete")

	err = run(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), libraryclient.NewClient(srv.URL, "seed-test", 1000, 0), "admin", "nope", 1)
	assert.ErrorContains(t, err, "login")
}
