// Package libraryclient talks to a running library API over HTTP.
package libraryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"libraryapi/internal/book"
)

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBackoff sets the first retry delay; later retries double it.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func NewClient(baseURL, userAgent string, rps int, maxRetries int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 1
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:  userAgent,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Token mirrors the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ListMeta mirrors the pagination metadata of GET /books.
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// Login exchanges credentials for a bearer token used by later calls.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return Token{}, err
	}

	var tok Token
	if _, err := c.do(ctx, http.MethodPost, "/login", body, &tok); err != nil {
		return Token{}, err
	}
	c.token = tok.AccessToken
	return tok, nil
}

func (c *Client) CreateBook(ctx context.Context, f book.Fields) (book.Book, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return book.Book{}, err
	}

	var b book.Book
	if _, err := c.do(ctx, http.MethodPost, "/books", body, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (c *Client) ListBooks(ctx context.Context, params url.Values) ([]book.Book, ListMeta, error) {
	path := "/books"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var books []book.Book
	env, err := c.do(ctx, http.MethodGet, path, nil, &books)
	if err != nil {
		return nil, ListMeta{}, err
	}
	var meta ListMeta
	if len(env.Meta) > 0 {
		if err := json.Unmarshal(env.Meta, &meta); err != nil {
			return nil, ListMeta{}, fmt.Errorf("decode meta: %w", err)
		}
	}
	return books, meta, nil
}

// retryable reports whether a status is worth another attempt. Only
// throttling and unavailability are retried for writes.
func retryable(method string, status int) bool {
	if status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable {
		return true
	}
	return method == http.MethodGet && status >= 500
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, target any) (envelope, error) {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return envelope{}, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return envelope{}, err
		}

		env, status, err := c.roundTrip(ctx, method, path, body)
		if err != nil {
			if ctx.Err() != nil {
				return envelope{}, ctx.Err()
			}
			lastErr = err
			continue
		}

		if status < 200 || status > 299 {
			apiErr := &APIError{Status: status}
			if env.Error != nil {
				apiErr.Code = env.Error.Code
				apiErr.Message = env.Error.Message
			}
			if retryable(method, status) {
				lastErr = apiErr
				continue
			}
			return envelope{}, apiErr
		}

		if target != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, target); err != nil {
				return envelope{}, fmt.Errorf("decode data: %w", err)
			}
		}
		return env, nil
	}
	return envelope{}, fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) (envelope, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return envelope{}, resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return env, resp.StatusCode, nil
}
