package middleware

import (
	"context"
	"net/http"
	"strings"

	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	authErrKey ctxKey = "auth_error"
)

// AuthContext:
// - verifier != nil: Bearer token => Verify(); si falla se loguea y queda marcado en el ctx
//   (httpx.UserID responde 403 en vez de 401).
// - verifier == nil: modo dev, X-Debug-User-ID => claims.
// - Sin identidad el request sigue; los handlers deciden si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Warn("bearer token rejected", map[string]any{
					"error": err.Error(),
				})
				ctx := context.WithValue(r.Context(), authErrKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// withClaims deja las claims en el ctx y agrega user_id al logger del request.
func withClaims(ctx context.Context, claims auth.Claims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	if info, ok := ctx.Value(accessKey{}).(*accessInfo); ok {
		info.userID = claims.UserID
	}
	return logger.WithContext(ctx, logger.FromContext(ctx).With(map[string]any{"user_id": claims.UserID}))
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// AuthError devuelve el error de verificación si vino un token inválido o vencido.
func AuthError(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
