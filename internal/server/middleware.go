package server

import (
	"net/http"
	"time"

	"github.com/teemow/homecal/internal/instrumentation"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics records request count and duration per method, normalized
// path and status code.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.metrics.RecordHTTPRequest(r.Context(),
			r.Method,
			instrumentation.NormalizeHTTPPath(r.URL.Path),
			rec.status,
			time.Since(start))
	})
}
