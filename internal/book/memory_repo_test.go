package book

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dune        = Input{Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965, Genre: GenreSciFi}
	gatsby      = Input{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PublishedYear: 1925, Genre: GenreFiction}
	mockingbird = Input{Title: "To Kill a Mockingbird", Author: "Harper Lee", PublishedYear: 1960, Genre: GenreFiction}
)

func TestMemoryRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	id, err := repo.Insert(ctx, dune)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, dune.WithID(id), got)
}

func TestMemoryRepo_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	a, _ := repo.Insert(ctx, gatsby)
	b, _ := repo.Insert(ctx, mockingbird)
	c, _ := repo.Insert(ctx, dune)
	require.NoError(t, repo.Delete(ctx, b))
	d, _ := repo.Insert(ctx, mockingbird)

	books, err = repo.List(ctx)
	require.NoError(t, err)
	ids := make([]int64, len(books))
	for i, bk := range books {
		ids[i] = bk.ID
	}
	assert.Equal(t, []int64{a, c, d}, ids)
	assert.Equal(t, int64(4), d, "ids are not reused")
}

func TestMemoryRepo_Replace(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	id, _ := repo.Insert(ctx, gatsby)

	require.NoError(t, repo.Replace(ctx, id, mockingbird))
	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mockingbird.WithID(id), got)

	assert.ErrorIs(t, repo.Replace(ctx, id+1, mockingbird), ErrNotFound)
}

func TestMemoryRepo_DeleteIsIdempotentFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	id, _ := repo.Insert(ctx, dune)

	require.NoError(t, repo.Delete(ctx, id))
	_, err := repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
}

func TestMemoryRepo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewMemoryRepo()

	_, err := repo.Insert(ctx, dune)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepo_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Insert(ctx, dune)
		}()
	}
	wg.Wait()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 50)
	seen := make(map[int64]bool)
	for _, b := range books {
		assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
		seen[b.ID] = true
	}
}
