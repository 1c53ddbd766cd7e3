package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Labels used in the "error" field of responses produced here.
const (
	LabelNotFound         = "Resource Not Found"
	LabelInternal         = "Internal Server Error"
	LabelMethodNotAllowed = "Method Not Allowed"
	LabelTooManyRequests  = "Too Many Requests"
	LabelTooLarge         = "Request Entity Too Large"
)

// ErrorResponse is the JSON body of labelled error replies. Message is always
// present, even when empty.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BadRequestResponse carries a single client-facing description.
type BadRequestResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by write operations that have no data to send back.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes data as the response body with the given status.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// JSONError writes an {error, message} body.
func JSONError(w http.ResponseWriter, statusCode int, label, message string) {
	JSON(w, statusCode, ErrorResponse{Error: label, Message: message})
}

// JSONMessage writes a {message} body.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// BadRequest writes a 400 whose body carries only the error description.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, BadRequestResponse{Error: message})
}

// NotFound is the fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, http.StatusNotFound, LabelNotFound, "The requested resource does not exist")
}

// InternalError logs err and reports its text to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFrom(r),
	)
	JSONError(w, http.StatusInternalServerError, LabelInternal, err.Error())
}

// MethodNotAllowed reports that r.Method is not served at this path.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSONError(w, http.StatusMethodNotAllowed, LabelMethodNotAllowed,
		fmt.Sprintf("The %s method is not allowed for the requested URL", r.Method))
}
