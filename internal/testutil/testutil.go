package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/platform/crypto"
)

// Orwell returns the two catalog fixtures used by the listing scenarios.
func Orwell() []book.Fields {
	y1949, y1945 := 1949, 1945
	dystopia, satire := "Dystopia", "Satire"
	return []book.Fields{
		{Title: "1984", Author: "George Orwell", Year: &y1949, Genre: &dystopia},
		{Title: "Animal Farm", Author: "George Orwell", Year: &y1945, Genre: &satire},
	}
}

// GenerateTestToken generates a JWT token valid for an hour.
func GenerateTestToken(secret, username string) string {
	token, _, _ := crypto.GenerateToken(secret, username, time.Now(), time.Hour)
	return token
}

// GenerateExpiredToken generates a JWT token that expired an hour ago.
func GenerateExpiredToken(secret, username string) string {
	token, _, _ := crypto.GenerateToken(secret, username, time.Now().Add(-2*time.Hour), time.Hour)
	return token
}

// NewRequest creates a new HTTP request with a JSON body when body is non-nil.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth creates a new HTTP request with a bearer token.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// Envelope is the decoded response body shared by every endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   Envelope
}

// RecordHTTPResponse decodes the recorder's envelope.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var env Envelope
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &env)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   env,
	}
}

// DecodeData unmarshals the envelope data into dst.
func (r RecordResponse) DecodeData(dst any) error {
	return json.Unmarshal(r.Body.Data, dst)
}

// ErrorCode returns the envelope error code, or "" on success.
func (r RecordResponse) ErrorCode() string {
	if r.Body.Error == nil {
		return ""
	}
	return r.Body.Error.Code
}
