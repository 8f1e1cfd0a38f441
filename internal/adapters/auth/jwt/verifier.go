package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"medicine-tracker/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrMissingUserID = errors.New("token claims missing user id")
)

// Verifier implementa auth.AuthVerifier validando tokens HS256 firmados con un secreto compartido.
// El user id sale de "userId" (string o número) o, si falta, de "sub".
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	mc := gojwt.MapClaims{}
	_, err := gojwt.ParseWithClaims(token, mc, func(t *gojwt.Token) (any, error) {
		return v.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	userID := claimString(mc["userId"])
	if userID == "" {
		userID = claimString(mc["sub"])
	}
	if userID == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID: userID,
		Email:  claimString(mc["email"]),
	}, nil
}

// Issue firma un token para userID (dev y tests; la emisión real vive fuera de este servicio).
func (v *Verifier) Issue(userID, email string, ttl time.Duration) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNotConfigured
	}
	now := v.now()
	t := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	return t.SignedString(v.secret)
}

func claimString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		// JSON numbers llegan como float64
		return strconv.FormatInt(int64(x), 10)
	default:
		return ""
	}
}
