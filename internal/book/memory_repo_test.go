package book

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var orwell = Fields{
	Title:  "1984",
	Author: "George Orwell",
	Year:   intPtr(1949),
	Genre:  strPtr("Dystopia"),
	ISBN:   strPtr("978-0451524935"),
}

func TestMemoryStore_Create(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("ids strictly increase", func(t *testing.T) {
		var last int64
		for i := 0; i < 5; i++ {
			b, err := s.Create(ctx, orwell)
			require.NoError(t, err)
			assert.Greater(t, b.ID, last)
			last = b.ID
		}
		assert.Equal(t, int64(5), last)
	})

	t.Run("get returns the input plus id", func(t *testing.T) {
		created, err := s.Create(ctx, orwell)
		require.NoError(t, err)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, newBook(created.ID, orwell), got)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		created, err := s.Create(ctx, orwell)
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, created.ID))

		next, err := s.Create(ctx, orwell)
		require.NoError(t, err)
		assert.Equal(t, created.ID+1, next.ID)
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Create(ctx, orwell)
	require.NoError(t, err)
	*created.Year = 2000
	created.Title = "changed"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1949, *got.Year)
	assert.Equal(t, "1984", got.Title)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Replace(ctx, 42, orwell)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, 42, Patch{Title: Some("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, 42), ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, _ := s.Create(ctx, orwell)
	second, _ := s.Create(ctx, Fields{Title: "Animal Farm", Author: "George Orwell"})

	require.NoError(t, s.Delete(ctx, first.ID))

	_, err := s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestMemoryStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	created, _ := s.Create(ctx, orwell)

	replaced, err := s.Replace(ctx, created.ID, Fields{Title: "Nineteen Eighty-Four", Author: "Orwell"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, "Nineteen Eighty-Four", replaced.Title)
	assert.Equal(t, "Orwell", replaced.Author)
	assert.Nil(t, replaced.Year)
	assert.Nil(t, replaced.Genre)
	assert.Nil(t, replaced.ISBN)
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch leaves record unchanged", func(t *testing.T) {
		s := NewMemoryStore()
		created, _ := s.Create(ctx, orwell)

		updated, err := s.Update(ctx, created.ID, Patch{})
		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("single field changes only that field", func(t *testing.T) {
		s := NewMemoryStore()
		created, _ := s.Create(ctx, orwell)

		updated, err := s.Update(ctx, created.ID, Patch{Year: Some(intPtr(1950))})
		require.NoError(t, err)

		want := created
		want.Year = intPtr(1950)
		assert.Equal(t, want, updated)
	})

	t.Run("present null clears optional field", func(t *testing.T) {
		s := NewMemoryStore()
		created, _ := s.Create(ctx, orwell)

		updated, err := s.Update(ctx, created.ID, Patch{Genre: Some[*string](nil)})
		require.NoError(t, err)
		assert.Nil(t, updated.Genre)
		assert.Equal(t, created.ISBN, updated.ISBN)
	})
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const workers = 50
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := s.Create(ctx, orwell)
			assert.NoError(t, err)
			ids <- b.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	for id := int64(1); id <= workers; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, workers)
}
