// Package identity extracts the administrator asserted by the bearer token. Issuing tokens
// and deciding who is an administrator happen elsewhere.
package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	ViewOnly bool   `json:"view_only"`
	jwt.RegisteredClaims
}

// Identity is the caller of a request.
type Identity struct {
	ID       string
	Username string
	IsAdmin  bool
	ViewOnly bool
}

// CanWrite reports whether the caller may change ledger state.
func (i Identity) CanWrite() bool {
	return i.IsAdmin && !i.ViewOnly
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(token string) (Identity, error) {
	claims := new(Claims)

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:       claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
		ViewOnly: claims.ViewOnly,
	}, nil
}

// Sign issues a token for id. It exists for tests and local tooling.
func (v *Verifier) Sign(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		ViewOnly: id.ViewOnly,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}

			id, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireWriter lets through administrators who are not view-only.
func RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok || !id.CanWrite() {
			respond.JSON(w, http.StatusForbidden, map[string]string{"error": "administrator access required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
