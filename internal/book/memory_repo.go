package book

import (
	"context"
	"fmt"
	"sync"
)

var _ Repository = (*MemoryStore)(nil)

// MemoryStore keeps the catalog in process memory. Records are kept in
// insertion order and looked up by linear scan. Mutations are serialized so
// identifier assignment stays unique and gapless.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	books  []Book
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// All returns a snapshot of every record.
func (s *MemoryStore) All(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	for i, b := range s.books {
		out[i] = b.clone()
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, notFound(id)
	}
	return s.books[i].clone(), nil
}

func (s *MemoryStore) Create(ctx context.Context, f Fields) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := newBook(s.nextID, f)
	s.books = append(s.books, b)
	s.nextID++
	return b.clone(), nil
}

// Replace overwrites every attribute except the identifier.
func (s *MemoryStore) Replace(ctx context.Context, id int64, f Fields) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, notFound(id)
	}
	s.books[i] = newBook(id, f)
	return s.books[i].clone(), nil
}

// Update merges the attributes present in p into the stored record.
func (s *MemoryStore) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, notFound(id)
	}
	p.apply(&s.books[i])
	return s.books[i].clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return fmt.Errorf("book %d: %w", id, ErrNotFound)
}
