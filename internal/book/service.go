package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the page of books matching the query.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	books, err := s.repo.All(ctx)
	if err != nil {
		return Page{}, err
	}
	return Search(books, q), nil
}

// Get returns a book by its ID.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new book and returns it with its assigned ID.
func (s *Service) Create(ctx context.Context, f Fields) (Book, error) {
	return s.repo.Create(ctx, f)
}

// Replace overwrites a book. Optional attributes missing from f are cleared.
func (s *Service) Replace(ctx context.Context, id int64, f Fields) (Book, error) {
	return s.repo.Replace(ctx, id, f)
}

// Update applies a partial update. An empty patch still reports ErrNotFound
// for unknown IDs.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	if p.Empty() {
		return s.repo.Get(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}

// Delete removes a book by its ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
