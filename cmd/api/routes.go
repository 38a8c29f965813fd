package main

import (
	"log/slog"
	"net/http"

	"libraryapi/internal/auth"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
)

const version = "1.0.0"

type application struct {
	cfg      config.Config
	logger   *slog.Logger
	books    *book.HTTPHandler
	auth     *auth.HTTPHandler
	verifier httpx.TokenVerifier
}

func (app *application) routes() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", app.welcome)
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("POST /login", app.auth.Login)

	router.HandleFunc("GET /books", app.books.List)
	router.HandleFunc("GET /books/{id}", app.books.Get)

	protect := httpx.AuthMiddleware(app.verifier)
	router.Handle("POST /books", protect(http.HandlerFunc(app.books.Create)))
	router.Handle("PUT /books/{id}", protect(http.HandlerFunc(app.books.Replace)))
	router.Handle("PATCH /books/{id}", protect(http.HandlerFunc(app.books.Update)))
	router.Handle("DELETE /books/{id}", protect(http.HandlerFunc(app.books.Delete)))

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(app.logger),
		httpx.RecoveryMiddleware(app.logger),
		httpx.SecurityHeadersMiddleware(app.cfg.EnableHSTS),
		httpx.CORSMiddleware(app.cfg.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(app.cfg.MaxBodyBytes),
	)
}

func (app *application) welcome(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, map[string]any{
		"message": "Welcome to the Library API",
		"version": version,
		"endpoints": map[string]string{
			"login": "POST /login",
			"books": "GET /books",
			"book":  "GET /books/{id}",
		},
	}, nil)
}
