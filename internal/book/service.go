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

// Create validates fields and stores a new book, returning its ID.
func (s *Service) Create(ctx context.Context, fields Fields) (int64, error) {
	in, err := ParseInput(fields)
	if err != nil {
		return 0, err
	}
	return s.repo.Insert(ctx, in)
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its ID.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Replace validates fields and overwrites the book with the given ID.
func (s *Service) Replace(ctx context.Context, id int64, fields Fields) error {
	in, err := ParseInput(fields)
	if err != nil {
		return err
	}
	return s.repo.Replace(ctx, id, in)
}

// Delete removes a book by its ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the underlying store is reachable. Stores without a
// remote connection are always ready.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.repo.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
