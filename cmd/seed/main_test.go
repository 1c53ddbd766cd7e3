package main

import (
	"context"
	"testing"

	"bookshelf/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_InsertsSampleBooksInOrder(t *testing.T) {
	ctx := context.Background()
	service := book.NewService(book.NewMemoryRepo())

	ids, err := seed(ctx, service)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	books, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "The Great Gatsby", books[0].Title)
	assert.Equal(t, book.GenreSciFi, books[2].Genre)
	assert.Equal(t, 1960, books[1].PublishedYear)
}
