package book

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"libraryapi/internal/httpx"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type bookReq struct {
	Title  string  `json:"title" validate:"required,min=3,max=200"`
	Author string  `json:"author" validate:"required,min=2,max=100"`
	Year   *int    `json:"year" validate:"omitempty,gte=1000,lte=2100"`
	Genre  *string `json:"genre" validate:"omitempty,max=50"`
	ISBN   *string `json:"isbn" validate:"omitempty,max=17,isbn13"`
}

func (req bookReq) fields() Fields {
	return Fields{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
		Genre:  req.Genre,
		ISBN:   req.ISBN,
	}
}

// patchRules holds the attributes present in a partial update so the same
// limits as bookReq apply. Nil means absent or cleared.
type patchRules struct {
	Title  *string `json:"title" validate:"omitempty,min=3,max=200"`
	Author *string `json:"author" validate:"omitempty,min=2,max=100"`
	Year   *int    `json:"year" validate:"omitempty,gte=1000,lte=2100"`
	Genre  *string `json:"genre" validate:"omitempty,max=50"`
	ISBN   *string `json:"isbn" validate:"omitempty,max=17,isbn13"`
}

func newPatchRules(p Patch) patchRules {
	var rules patchRules
	if p.Title.Set {
		rules.Title = &p.Title.Value
	}
	if p.Author.Set {
		rules.Author = &p.Author.Value
	}
	if p.Year.Set {
		rules.Year = p.Year.Value
	}
	if p.Genre.Set {
		rules.Genre = p.Genre.Value
	}
	if p.ISBN.Set {
		rules.ISBN = p.ISBN.Value
	}
	return rules
}

type listReq struct {
	Author string `query:"author" validate:"max=100"`
	Search string `query:"search" validate:"max=200"`
	Sort   string `query:"sort" validate:"omitempty,oneof=title author year"`
	Order  string `query:"order" validate:"oneof=asc desc"`
	Page   int    `query:"page" validate:"gte=1"`
	Limit  int    `query:"limit" validate:"gte=1,lte=100"`
}

func (req listReq) query() Query {
	return Query{
		Author: req.Author,
		Search: req.Search,
		Sort:   SortKey(req.Sort),
		Desc:   req.Order == "desc",
		Page:   req.Page,
		Limit:  req.Limit,
	}
}

// List handles GET /books
// @Summary List books
// @Description Filter by author and title, sort, and paginate the catalog
// @Tags books
// @Produce json
// @Param author query string false "Author substring (case-insensitive)"
// @Param search query string false "Title substring (case-insensitive)"
// @Param sort query string false "Sort key" Enums(title, author, year)
// @Param order query string false "Sort order" Enums(asc, desc) default(asc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var details []httpx.ErrorDetail
	page, detail := httpx.QueryInt(query, "page", defaultPage)
	if detail != nil {
		details = append(details, *detail)
	}
	limit, detail := httpx.QueryInt(query, "limit", defaultLimit)
	if detail != nil {
		details = append(details, *detail)
	}
	if len(details) > 0 {
		httpx.JSONValidationError(w, r, details)
		return
	}

	req := listReq{
		Author: query.Get("author"),
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
		Order:  strings.ToLower(httpx.QueryString(query, "order", "asc")),
		Page:   page,
		Limit:  limit,
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONValidationError(w, r, validationErrors)
		return
	}

	result, err := h.service.List(r.Context(), req.query())
	if err != nil {
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, result.Items, map[string]any{
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"total_pages": result.TotalPages(),
	})
}

// Get handles GET /books/{id}
// @Summary Get book by ID
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body bookReq true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := readBookReq(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), req.fields())
	if err != nil {
		httpx.JSONInternalError(w, r)
		return
	}
	httpx.JSONCreated(w, r, fmt.Sprintf("/books/%d", b.ID), b)
}

// Replace handles PUT /books/{id}
// @Summary Replace a book
// @Description Optional fields missing from the body are cleared
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book ID"
// @Param request body bookReq true "Book"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	req, ok := readBookReq(w, r)
	if !ok {
		return
	}

	b, err := h.service.Replace(r.Context(), id, req.fields())
	if err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PATCH /books/{id}
// @Summary Partially update a book
// @Description Only the fields present in the body are changed; null clears an optional field
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book ID"
// @Param request body bookReq true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	var patch Patch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}
	patch.Title.Value = strings.TrimSpace(patch.Title.Value)
	patch.Author.Value = strings.TrimSpace(patch.Author.Value)
	if validationErrors := httpx.ValidateStruct(newPatchRules(patch)); len(validationErrors) > 0 {
		httpx.JSONValidationError(w, r, validationErrors)
		return
	}

	b, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security Bearer
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{
		"message": fmt.Sprintf("Book %d deleted successfully", id),
	}, nil)
}

func readID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, detail := httpx.PathID(r, "id")
	if detail != nil {
		httpx.JSONValidationError(w, r, []httpx.ErrorDetail{*detail})
		return 0, false
	}
	return id, true
}

func readBookReq(w http.ResponseWriter, r *http.Request) (bookReq, bool) {
	var req bookReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return bookReq{}, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONValidationError(w, r, validationErrors)
		return bookReq{}, false
	}
	return req, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Book with ID %d not found", id), nil)
		return
	}
	httpx.JSONInternalError(w, r)
}
