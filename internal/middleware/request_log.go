package middleware

import (
	"net/http"
	"slices"
	"time"

	"bird-collector/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog loguea inicio y fin de cada request con el request id de chi.
// Debe ir después de chimw.RequestID y de AuthContext.
func RequestLog(log logger.Logger, skipPaths ...string) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(skipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			fields := map[string]any{
				"path":       r.URL.Path,
				"method":     r.Method,
				"request_id": chimw.GetReqID(r.Context()),
			}
			if c, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
			}
			log.Info("request_started", fields)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields["status"] = ww.Status()
			fields["bytes"] = ww.BytesWritten()
			fields["duration_ms"] = float64(time.Since(start).Nanoseconds()) / 1e6
			log.Info("request_completed", fields)
		})
	}
}
