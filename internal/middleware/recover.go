package middleware

import (
	"net/http"
	"runtime/debug"

	"medicine-tracker/internal/platform/logger"
)

// Recover captura panics, los loguea con el stack y responde 500.
// Reemplaza a chi/middleware.Recoverer para que el panic quede en el log estructurado.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic": rec,
				"stack": string(debug.Stack()),
			})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
