package middleware

import (
	"net/http"
	"runtime/debug"

	"asclepius-api/internal/platform/apierror"
	"asclepius-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover convierte un panic del handler en un 500 JSON genérico. El valor
// del panic y el stack solo van al log.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("unexpected error", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})

				if r.Header.Get("Connection") != "Upgrade" {
					apierror.Internal(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
