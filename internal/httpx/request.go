package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the limit
// installed by RequestSizeLimitMiddleware.
var ErrBodyTooLarge = errors.New("request body too large")

// DecodeJSON decodes exactly one JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		default:
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// WriteDecodeError maps a DecodeJSON failure onto the error envelope.
func WriteDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
		return
	}
	JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_BODY", "Invalid request body", []ErrorDetail{
		{Field: "body", Message: err.Error()},
	})
}

// PathID parses a positive integer path value.
func PathID(r *http.Request, name string) (int64, *ErrorDetail) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, &ErrorDetail{Field: name, Message: fmt.Sprintf("%s must be an integer", name)}
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning def when absent.
func QueryInt(q url.Values, key string, def int) (int, *ErrorDetail) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ErrorDetail{Field: key, Message: fmt.Sprintf("%s must be an integer", key)}
	}
	return v, nil
}

// QueryString reads a string query parameter, returning def when absent.
func QueryString(q url.Values, key, def string) string {
	if s := q.Get(key); s != "" {
		return s
	}
	return def
}
