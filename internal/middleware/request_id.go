package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"medicine-tracker/internal/platform/logger"
)

type accessKey struct{}

// accessInfo lo completa AuthContext cuando corre después de RequestLogger.
type accessInfo struct {
	userID string
}

// RequestLogger deja en el ctx un logger con request_id/method/path
// (requiere chi/middleware.RequestID antes) y emite una línea por request.
func RequestLogger(base logger.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := base.With(map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			info := &accessInfo{}
			ctx := context.WithValue(r.Context(), accessKey{}, info)
			ctx = logger.WithContext(ctx, l)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := map[string]any{
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if info.userID != "" {
				fields["user_id"] = info.userID
			} else if claims, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = claims.UserID
			}
			l.Info("request", fields)
		})
	}
}
