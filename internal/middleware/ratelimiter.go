package middleware

import (
	"fmt"
	"net"
	"net/http"

	apperrors "github.com/practice-labs/loginsvc/internal/errors"
	"github.com/practice-labs/loginsvc/internal/middleware/ratelimit"
)

// RateLimit throttles requests per identity. Failing to resolve an identity
// is a client error, not a bypass.
func RateLimit(rl *ratelimit.PerClient, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteErrorAndStatusCode maps an error to its HTTP status; anything without
// an explicit status is a 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*apperrors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// GetIP extracts the client IP from RemoteAddr. Proxy headers are not
// trusted; this service expects to terminate connections directly.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", &apperrors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("invalid IP address: %s", ip),
			StatusCode: http.StatusBadRequest,
		}
	}
	return ip, nil
}
