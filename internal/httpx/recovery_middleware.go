package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a panic in next into a 500 JSON response, unless
// the handler already started writing one.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			rw = &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		}

		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				slog.ErrorContext(r.Context(), "panic recovered",
					"request_id", RequestIDFrom(r),
					"error", err,
					"stack", string(debug.Stack()),
				)

				if !rw.wroteHeader() {
					rw.Header().Set("Connection", "close")
					JSONError(rw, http.StatusInternalServerError, LabelInternal, fmt.Sprint(err))
				}
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
