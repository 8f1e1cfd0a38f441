// Package httpx reúne los helpers HTTP compartidos por los handlers de cada módulo.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/platform/validation"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteInvalid responde 400 incluyendo el detalle por campo si el error lo trae.
func WriteInvalid(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "validation failed",
		Fields: validation.Fields(err),
	})
}

// WriteInternal loguea el error real y responde un mensaje genérico.
func WriteInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	fields := map[string]any{"op": op, "err": err}
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		fields["user_id"] = claims.UserID
	}
	logger.FromContext(r.Context()).Error("request failed", fields)
	WriteError(w, http.StatusInternalServerError, "internal error")
}

// UserID exige identidad autenticada: 401 sin credenciales, 403 si el token
// vino pero no verificó.
func UserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		if middleware.AuthError(r.Context()) != nil {
			WriteError(w, http.StatusForbidden, "Invalid or expired token")
			return "", false
		}
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return "", false
	}
	return claims.UserID, true
}

// MaxBodyBytes limita el body que acepta DecodeJSON.
const MaxBodyBytes = 10 << 20

// DecodeJSON decodifica el body; un body vacío se reporta como "no data provided".
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	case errors.Is(err, io.EOF):
		WriteError(w, http.StatusBadRequest, "no data provided")
		return false
	case err != nil:
		WriteError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
