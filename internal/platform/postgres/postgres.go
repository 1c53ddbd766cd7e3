// Package postgres opens connection pools and applies goose migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Open creates a pool and verifies it with a ping bounded by pingTimeout.
func Open(ctx context.Context, dsn string, pingTimeout time.Duration) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrator runs goose against a pool. Migrations are read from fsys, or from
// the local filesystem when fsys is nil.
type Migrator struct {
	db  *sql.DB
	dir string
}

func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, dir string) (*Migrator, error) {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	return &Migrator{db: stdlib.OpenDBFromPool(pool), dir: dir}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return goose.UpContext(ctx, m.db, m.dir)
}

func (m *Migrator) Down(ctx context.Context) error {
	return goose.DownContext(ctx, m.db, m.dir)
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) error {
	return goose.ResetContext(ctx, m.db, m.dir)
}

// Status logs the state of each migration through goose's logger.
func (m *Migrator) Status(ctx context.Context) error {
	return goose.StatusContext(ctx, m.db, m.dir)
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return goose.GetDBVersionContext(ctx, m.db)
}

// Recreate drops and re-applies the whole schema.
func (m *Migrator) Recreate(ctx context.Context) error {
	if err := m.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := m.Up(ctx); err != nil {
		return fmt.Errorf("up: %w", err)
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
