package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// DuneFields is a valid book request body.
func DuneFields() map[string]any {
	return map[string]any{
		"title":          "Dune",
		"author":         "Frank Herbert",
		"published_year": 1965,
		"genre":          "Sci-Fi",
	}
}

// NewRequest creates a new HTTP request for testing. A string body is sent
// verbatim; anything else is marshalled to JSON.
func NewRequest(method, path string, body any) *http.Request {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, rd)
	if rd != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewRequestWithID is NewRequest with the {id} path value set, for calling
// handlers directly without a mux.
func NewRequestWithID(method, path, id string, body any) *http.Request {
	r := NewRequest(method, path, body)
	r.SetPathValue("id", id)
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
	Raw    []byte
}

// RecordHTTPResponse records the HTTP response. Body stays nil when the
// payload is not a JSON object.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	raw, _ := io.ReadAll(result.Body)

	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   body,
		Raw:    raw,
	}
}
