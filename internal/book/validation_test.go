package book

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		"title":          "Dune",
		"author":         "Frank Herbert",
		"published_year": json.Number("1965"),
		"genre":          "Sci-Fi",
	}
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Message
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validFields()))

	f := validFields()
	f["published_year"] = 1965
	assert.NoError(t, Validate(f), "Go int years are accepted")
}

func TestValidate_MissingFields(t *testing.T) {
	for _, field := range requiredFields {
		t.Run(field, func(t *testing.T) {
			f := validFields()
			delete(f, field)
			assert.Equal(t, "'"+field+"' is required.", messageOf(t, Validate(f)))
		})
	}
}

func TestValidate_FirstMissingFieldWins(t *testing.T) {
	assert.Equal(t, "'author' is required.", messageOf(t, Validate(Fields{"title": "X"})))
	assert.Equal(t, "'title' is required.", messageOf(t, Validate(Fields{})))
	assert.Equal(t, "'title' is required.", messageOf(t, Validate(nil)))
}

func TestValidate_NullAndBlankCountAsMissing(t *testing.T) {
	f := validFields()
	f["author"] = nil
	assert.Equal(t, "'author' is required.", messageOf(t, Validate(f)))

	f = validFields()
	f["title"] = "   "
	assert.Equal(t, "'title' is required.", messageOf(t, Validate(f)))
}

func TestValidate_NullYearAndGenreCountAsMissing(t *testing.T) {
	for _, field := range []string{"published_year", "genre"} {
		f := validFields()
		f[field] = nil
		assert.Equal(t, "'"+field+"' is required.", messageOf(t, Validate(f)))
	}
}

func TestValidate_PublishedYear(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"zero", json.Number("0")},
		{"negative", json.Number("-12")},
		{"decimal", json.Number("1965.5")},
		{"whole decimal", json.Number("1965.0")},
		{"exponent", json.Number("2e3")},
		{"string", "1965"},
		{"empty string", ""},
		{"blank string", "  "},
		{"bool", true},
		{"float64", float64(1965)},
		{"too large", json.Number("99999999999")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			f["published_year"] = tt.value
			assert.Equal(t, "'published_year' must be a valid year.", messageOf(t, Validate(f)))
		})
	}
}

func TestValidate_Genre(t *testing.T) {
	want := "'genre' must be one of Fiction, Non-Fiction, Mystery, Sci-Fi, Fantasy."
	for _, g := range []any{"Horror", "fiction", "", "   ", 7, []any{"Fiction"}} {
		f := validFields()
		f["genre"] = g
		msg := messageOf(t, Validate(f))
		assert.Equal(t, want, msg, "genre %q", g)
		for _, valid := range Genres() {
			assert.Contains(t, msg, string(valid))
		}
	}

	for _, g := range Genres() {
		f := validFields()
		f["genre"] = string(g)
		assert.NoError(t, Validate(f), g)
	}
}

func TestValidate_CheckOrder(t *testing.T) {
	f := validFields()
	f["published_year"] = json.Number("-1")
	f["genre"] = "Horror"
	assert.Equal(t, "'published_year' must be a valid year.", messageOf(t, Validate(f)))

	f = validFields()
	delete(f, "genre")
	f["published_year"] = "abc"
	assert.Equal(t, "'genre' is required.", messageOf(t, Validate(f)))
}

func TestValidate_TextFields(t *testing.T) {
	f := validFields()
	f["title"] = 42
	assert.Equal(t, "'title' must be a string.", messageOf(t, Validate(f)))

	f = validFields()
	f["title"] = strings.Repeat("a", maxTitleLen+1)
	assert.Equal(t, "'title' must be at most 150 characters.", messageOf(t, Validate(f)))

	f = validFields()
	f["author"] = strings.Repeat("é", maxAuthorLen)
	assert.NoError(t, Validate(f), "length is counted in characters")
}

func TestValidate_UnknownKeysRejected(t *testing.T) {
	f := validFields()
	f["id"] = json.Number("5")
	f["isbn"] = "123"
	err := Validate(f)
	assert.Equal(t, "'id' is not a recognized field.", messageOf(t, err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}

func TestParseInput(t *testing.T) {
	in, err := ParseInput(validFields())
	require.NoError(t, err)
	assert.Equal(t, Input{Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965, Genre: GenreSciFi}, in)
	assert.Equal(t, Book{ID: 3, Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965, Genre: GenreSciFi}, in.WithID(3))
}
