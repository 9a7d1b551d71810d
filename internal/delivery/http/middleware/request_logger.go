package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/logger"
)

// RequestLogger logs every request with timing, status, and session/user
// attribution, and tags the context logger with a short request ID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()[:8]
		reqLogger := logger.WithRequestID(requestID)

		ctx := logger.NewContext(r.Context(), &reqLogger)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		event := reqLogger.Info()
		if wrapped.statusCode >= 500 {
			event = reqLogger.Error()
		} else if wrapped.statusCode >= 400 {
			event = reqLogger.Warn()
		}

		userID := ""
		if user := domain.UserFromContext(r.Context()); user != nil {
			userID = user.ID
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration_ms", time.Since(start)).
			Str("ip", clientIP(r)).
			Str("session_id", domain.SessionFromContext(r.Context())).
			Str("user_id", userID).
			Msg("HTTP")
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
