package httpx

import (
	"net/http"
	"strings"
)

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONUnauthorized(w, r, "UNAUTHORIZED", "Not authenticated")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			username, err := verifier.Verify(token)
			if err != nil {
				JSONUnauthorized(w, r, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			recordUser(w, username)
			ctx := ContextWithUser(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
