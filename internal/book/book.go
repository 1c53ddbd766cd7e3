package book

import (
	"errors"
)

// ErrNotFound is returned when no book exists with the requested ID.
var ErrNotFound = errors.New("book not found")

// Genre is one of the fixed set of genres a book may be filed under.
type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreMystery    Genre = "Mystery"
	GenreSciFi      Genre = "Sci-Fi"
	GenreFantasy    Genre = "Fantasy"
)

var validGenres = []Genre{GenreFiction, GenreNonFiction, GenreMystery, GenreSciFi, GenreFantasy}

// Genres returns the valid genres in their canonical order.
func Genres() []Genre {
	out := make([]Genre, len(validGenres))
	copy(out, validGenres)
	return out
}

// Book represents a stored book record.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	Genre         Genre  `json:"genre"`
}

// Input carries the four mutable fields of a book. It is only built by
// ParseInput, so a value reaching the store has already been validated.
type Input struct {
	Title         string
	Author        string
	PublishedYear int
	Genre         Genre
}

// Fields is an unvalidated candidate record, typically a decoded JSON object.
type Fields map[string]any

// WithID returns the book that results from storing in under id.
func (in Input) WithID(id int64) Book {
	return Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		PublishedYear: in.PublishedYear,
		Genre:         in.Genre,
	}
}
