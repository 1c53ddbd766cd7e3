package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const booksTable = "books"

var (
	dialect     = goqu.Dialect("postgres")
	bookColumns = []any{"id", "title", "author", "published_year", "genre"}
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func record(in Input) goqu.Record {
	return goqu.Record{
		"title":          in.Title,
		"author":         in.Author,
		"published_year": in.PublishedYear,
		"genre":          string(in.Genre),
	}
}

func insertQuery(in Input) (string, []any, error) {
	return dialect.Insert(booksTable).
		Rows(record(in)).
		Returning("id").
		Prepared(true).
		ToSQL()
}

func listQuery() (string, []any, error) {
	return dialect.From(booksTable).
		Select(bookColumns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
}

func getQuery(id int64) (string, []any, error) {
	return dialect.From(booksTable).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
}

func replaceQuery(id int64, in Input) (string, []any, error) {
	return dialect.Update(booksTable).
		Set(record(in)).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
}

func deleteQuery(id int64) (string, []any, error) {
	return dialect.Delete(booksTable).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
}

func scanBook(row pgx.Row) (Book, error) {
	var (
		b     Book
		genre string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear, &genre); err != nil {
		return Book{}, err
	}
	b.Genre = Genre(genre)
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, in Input) (int64, error) {
	query, args, err := insertQuery(in)
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64
	if err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := listQuery()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	query, args, err := getQuery(id)
	if err != nil {
		return Book{}, fmt.Errorf("build get: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Replace(ctx context.Context, id int64, in Input) error {
	query, args, err := replaceQuery(id, in)
	if err != nil {
		return fmt.Errorf("build replace: %w", err)
	}
	return r.execAffectingOne(ctx, query, args)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := deleteQuery(id)
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	return r.execAffectingOne(ctx, query, args)
}

// execAffectingOne runs a statement keyed by ID and maps zero affected rows
// to ErrNotFound.
func (r *PostgresRepo) execAffectingOne(ctx context.Context, query string, args []any) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}
