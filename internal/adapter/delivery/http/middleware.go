package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
)

// recoverer turns a handler panic into the JSON server error response and
// attaches the panic value and stack to the request log entry.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{
				"err":   fmt.Sprintf("panic: %v", rec),
				"stack": string(debug.Stack()),
			})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, serverErrorResponse)
		}()

		next.ServeHTTP(w, r)
	})
}
