package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	ErrInvalidJSON  = errors.New("request body must be a single JSON object")
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeObject reads exactly one JSON object from the request body. Numbers
// are kept as json.Number so integers can be told apart from decimals.
func DecodeObject(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, ErrInvalidJSON
	}
	if obj == nil {
		return nil, ErrInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidJSON
	}
	return obj, nil
}
