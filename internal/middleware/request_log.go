package middleware

import (
	"net/http"
	"strconv"
	"time"

	"asclepius-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const ProcessTimeHeader = "X-Process-Time"

// RequestLogger loguea cada request al terminar y reporta el tiempo de
// procesamiento (segundos) en el header X-Process-Time.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimw.GetReqID(r.Context())

			log.Debug("request started", map[string]any{
				"request_id": reqID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			tw := &timedWriter{ResponseWriter: w, start: start}
			next.ServeHTTP(tw, r)
			if !tw.wroteHeader {
				tw.WriteHeader(http.StatusOK)
			}

			log.Info("request completed", map[string]any{
				"request_id":  reqID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      tw.status,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			})
		})
	}
}

// timedWriter setea el header de tiempo justo antes de escribir el status;
// después ya no se pueden tocar headers.
type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	wroteHeader bool
}

func (tw *timedWriter) WriteHeader(code int) {
	if tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.status = code
	elapsed := time.Since(tw.start).Seconds()
	tw.Header().Set(ProcessTimeHeader, strconv.FormatFloat(elapsed, 'f', 6, 64))
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timedWriter) Write(b []byte) (int, error) {
	if !tw.wroteHeader {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

func (tw *timedWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}
