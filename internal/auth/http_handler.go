package auth

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type LoginReq struct {
	Username string `json:"username" form:"username" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// Login handles POST /login
// @Summary Obtain an access token
// @Description Accepts a JSON body or an OAuth2 password-flow form body
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := readLoginReq(r)
	if err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONValidationError(w, r, validationErrors)
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSONUnauthorized(w, r, "INVALID_CREDENTIALS", "Incorrect username or password")
			return
		}
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, token, nil)
}

func readLoginReq(r *http.Request) (LoginReq, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return LoginReq{}, httpx.ErrBodyTooLarge
			}
			return LoginReq{}, err
		}
		return LoginReq{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}, nil
	}

	var req LoginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return LoginReq{}, err
	}
	return req, nil
}
