package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// Insert stores in under a newly assigned ID and returns that ID.
	Insert(ctx context.Context, in Input) (int64, error)
	// List returns every book in insertion order.
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	// Replace overwrites all mutable fields of an existing book.
	Replace(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

// Pinger is implemented by repositories backed by a remote database.
type Pinger interface {
	Ping(ctx context.Context) error
}
