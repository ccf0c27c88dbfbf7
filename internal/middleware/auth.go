package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/practice-labs/loginsvc/internal/domain"
)

// TokenVerifier is the slice of the auth service this middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) domain.VerifyResult
}

// Key to store the verified claims in the request context
type key int

const claimsKey key = 0

type Auth struct {
	verifier TokenVerifier
}

func NewAuth(verifier TokenVerifier) *Auth {
	return &Auth{verifier: verifier}
}

// NeedAuth returns middleware that requires a valid token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that additionally requires the admin role.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := TokenFromRequest(r)
			if tok == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			result := a.verifier.VerifyToken(tok)
			if !result.Valid || result.Data == nil {
				http.Error(w, result.Message, http.StatusUnauthorized)
				return
			}

			if adminOnly && result.Data.Role != domain.RoleAdmin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, result.Data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the access token from the cookie (browser
// clients) or the Authorization header (API clients). Empty when absent.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if tok, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return tok
	}
	return ""
}

// ClaimsFromContext retrieves the verified claims, or nil when the request
// did not pass the auth middleware.
func ClaimsFromContext(r *http.Request) *domain.TokenData {
	claims, ok := r.Context().Value(claimsKey).(*domain.TokenData)
	if !ok {
		return nil
	}
	return claims
}
