package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bookshelf/db"
	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/postgres"
)

var sampleBooks = []book.Fields{
	{"title": "The Great Gatsby", "author": "F. Scott Fitzgerald", "published_year": 1925, "genre": "Fiction"},
	{"title": "To Kill a Mockingbird", "author": "Harper Lee", "published_year": 1960, "genre": "Fiction"},
	{"title": "Dune", "author": "Frank Herbert", "published_year": 1965, "genre": "Sci-Fi"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// run drops and recreates the books table, then inserts the sample books.
func run(ctx context.Context, cfg config.Config) error {
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", config.RedactDSN(cfg.DatabaseDSN), err)
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, db.Migrations, db.MigrationsDir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Recreate(ctx); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	slog.Info("schema recreated")

	ids, err := seed(ctx, book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout)))
	if err != nil {
		return err
	}
	slog.Info("seeded books", "count", len(ids), "ids", ids)
	return nil
}

func seed(ctx context.Context, service *book.Service) ([]int64, error) {
	ids := make([]int64, 0, len(sampleBooks))
	for _, fields := range sampleBooks {
		id, err := service.Create(ctx, fields)
		if err != nil {
			return ids, fmt.Errorf("insert %q: %w", fields["title"], err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
