package book

import (
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no book has the requested ID.
var ErrNotFound = errors.New("book not found")

// Book represents a book record held by the catalog.
type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
	ISBN   *string `json:"isbn"`
}

// Fields is the full set of writable attributes used by create and replace.
// Nil optionals are stored as cleared.
type Fields struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
	ISBN   *string `json:"isbn"`
}

// Optional marks whether an attribute was present in a partial update.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, null included.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// Patch carries the attributes of a partial update. A present optional
// attribute holding nil clears the stored value.
type Patch struct {
	Title  Optional[string]  `json:"title"`
	Author Optional[string]  `json:"author"`
	Year   Optional[*int]    `json:"year"`
	Genre  Optional[*string] `json:"genre"`
	ISBN   Optional[*string] `json:"isbn"`
}

// Empty reports whether the patch touches no attribute.
func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Author.Set && !p.Year.Set && !p.Genre.Set && !p.ISBN.Set
}

func (p Patch) apply(b *Book) {
	if p.Title.Set {
		b.Title = p.Title.Value
	}
	if p.Author.Set {
		b.Author = p.Author.Value
	}
	if p.Year.Set {
		b.Year = cloneInt(p.Year.Value)
	}
	if p.Genre.Set {
		b.Genre = cloneString(p.Genre.Value)
	}
	if p.ISBN.Set {
		b.ISBN = cloneString(p.ISBN.Value)
	}
}

func newBook(id int64, f Fields) Book {
	return Book{
		ID:     id,
		Title:  f.Title,
		Author: f.Author,
		Year:   cloneInt(f.Year),
		Genre:  cloneString(f.Genre),
		ISBN:   cloneString(f.ISBN),
	}
}

func (b Book) clone() Book {
	b.Year = cloneInt(b.Year)
	b.Genre = cloneString(b.Genre)
	b.ISBN = cloneString(b.ISBN)
	return b
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
