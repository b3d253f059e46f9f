package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chore-tracker/internal/domain/token"
	"chore-tracker/pkg/logger"
)

const (
	msgNoCredential = "no credential supplied"
	msgUnknownToken = "token is not recognized"
	msgExpiredToken = "token has expired"
	msgInvalidToken = "token is malformed"
)

type contextKey int

const (
	identityKey contextKey = iota
	rawTokenKey
)

// Verifier checks a raw token against the credential store and its signature.
type Verifier interface {
	Verify(ctx context.Context, raw string) (token.Identity, error)
}

// Guard admits requests carrying the caller's current token and attaches the
// verified identity to the request context.
type Guard struct {
	verifier Verifier
	log      logger.Logger
}

func NewGuard(verifier Verifier, log logger.Logger) *Guard {
	return &Guard{verifier: verifier, log: log}
}

func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := credential(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, msgNoCredential)
			return
		}

		identity, err := g.verifier.Verify(r.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrUnknownToken):
				g.log.BusinessError("auth.guard: unknown token", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgUnknownToken)
			case errors.Is(err, token.ErrTokenExpired):
				g.log.BusinessError("auth.guard: expired token", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgExpiredToken)
			case errors.Is(err, token.ErrTokenMalformed):
				g.log.BusinessError("auth.guard: malformed token", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
			default:
				g.log.InternalError("auth.guard: verify failed", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		ctx = context.WithValue(ctx, rawTokenKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// credential extracts the token from the Authorization header. The raw token
// is the contract; a "Bearer " prefix is accepted as well.
func credential(value string) (string, bool) {
	value = strings.TrimSpace(value)
	const scheme = "bearer"
	if len(value) >= len(scheme) && strings.EqualFold(value[:len(scheme)], scheme) &&
		(len(value) == len(scheme) || value[len(scheme)] == ' ') {
		value = strings.TrimSpace(value[len(scheme):])
	}
	if value == "" {
		return "", false
	}
	return value, true
}

func WithIdentity(ctx context.Context, identity token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	if !ok || identity.UserID == 0 {
		return token.Identity{}, false
	}
	return identity, true
}

// TokenFromContext returns the raw token the Guard admitted the request with.
func TokenFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(rawTokenKey).(string)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
