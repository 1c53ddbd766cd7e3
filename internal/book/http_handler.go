package book

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/httpx"
)

const (
	msgCreated = "Book added successfully"
	msgUpdated = "Book updated successfully"
	msgDeleted = "Book deleted successfully"

	labelNotFound   = "Book not found"
	messageNotFound = "No book exists with the provided ID"

	messageInvalidBody = "Request body must be a single JSON object."
)

// CreatedResponse is the body of a successful POST /books.
type CreatedResponse struct {
	Message string `json:"message"`
	BookID  int64  `json:"book_id"`
}

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.Handle("/books", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(h.List),
		http.MethodPost: http.HandlerFunc(h.Create),
	}))
	mux.Handle("/books/{id}", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(h.Get),
		http.MethodPut:    http.HandlerFunc(h.Replace),
		http.MethodDelete: http.HandlerFunc(h.Delete),
	}))
}

// Create handles POST /books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} httpx.BadRequestResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), fields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, CreatedResponse{Message: msgCreated, BookID: id})
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Replace handles PUT /books/{id}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.BadRequestResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	if err := h.service.Replace(r.Context(), id, fields); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, msgUpdated)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, msgDeleted)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.BadRequest(w, verr.Message)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, labelNotFound, messageNotFound)
	default:
		httpx.InternalError(w, r, err)
	}
}

// pathID parses the {id} segment. Anything but an unsigned decimal integer
// does not address a book, so it gets the generic not-found reply.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	for _, c := range raw {
		if c < '0' || c > '9' {
			raw = ""
			break
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpx.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, bool) {
	obj, err := httpx.DecodeObject(r)
	switch {
	case errors.Is(err, httpx.ErrBodyTooLarge):
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, httpx.LabelTooLarge, "Request body too large")
		return nil, false
	case err != nil:
		httpx.BadRequest(w, messageInvalidBody)
		return nil, false
	}
	return Fields(obj), true
}
