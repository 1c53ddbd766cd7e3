package book

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column widths of the books table.
const (
	maxTitleLen  = 150
	maxAuthorLen = 100
)

var requiredFields = []string{"title", "author", "published_year", "genre"}

var textFields = map[string]bool{"title": true, "author": true}

var validate = validator.New()

// ValidationError reports the first rule a candidate record broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks candidate against the book rules and returns nil when it is
// acceptable. Checks run in a fixed order: required fields (first missing one
// wins), published_year, genre, text fields, then unknown keys.
//
// Numbers are expected as json.Number (decode with UseNumber) or Go integer
// types; floating point values are not valid years.
func Validate(candidate Fields) error {
	_, err := parse(candidate)
	return err
}

// ParseInput validates candidate and converts it into an Input.
func ParseInput(candidate Fields) (Input, error) {
	return parse(candidate)
}

func parse(candidate Fields) (Input, error) {
	for _, field := range requiredFields {
		if !present(candidate, field) {
			return Input{}, invalid(field, "'%s' is required.", field)
		}
	}

	year, ok := integerValue(candidate["published_year"])
	if !ok || validate.Var(year, fmt.Sprintf("gt=0,lte=%d", math.MaxInt32)) != nil {
		return Input{}, invalid("published_year", "'published_year' must be a valid year.")
	}

	genre, ok := candidate["genre"].(string)
	if !ok || validate.Var(genre, "oneof="+genreList(" ")) != nil {
		return Input{}, invalid("genre", "'genre' must be one of %s.", genreList(", "))
	}

	title, err := text(candidate, "title", maxTitleLen)
	if err != nil {
		return Input{}, err
	}
	author, err := text(candidate, "author", maxAuthorLen)
	if err != nil {
		return Input{}, err
	}

	if unknown := unknownKeys(candidate); len(unknown) > 0 {
		return Input{}, invalid(unknown[0], "'%s' is not a recognized field.", unknown[0])
	}

	return Input{
		Title:         title,
		Author:        author,
		PublishedYear: int(year),
		Genre:         Genre(genre),
	}, nil
}

// present treats null as absent, and a blank title or author too.
func present(candidate Fields, field string) bool {
	v, ok := candidate[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && textFields[field] {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func text(candidate Fields, field string, maxLen int) (string, error) {
	s, ok := candidate[field].(string)
	if !ok {
		return "", invalid(field, "'%s' must be a string.", field)
	}
	if validate.Var(s, fmt.Sprintf("max=%d", maxLen)) != nil {
		return "", invalid(field, "'%s' must be at most %d characters.", field, maxLen)
	}
	return s, nil
}

func integerValue(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func genreList(sep string) string {
	names := make([]string, len(validGenres))
	for i, g := range validGenres {
		names[i] = string(g)
	}
	return strings.Join(names, sep)
}

func unknownKeys(candidate Fields) []string {
	var unknown []string
	for key := range candidate {
		known := false
		for _, field := range requiredFields {
			if key == field {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
