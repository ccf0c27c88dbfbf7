// Package token issues and verifies the opaque access tokens returned on
// successful login. Two codecs share one contract: every token is exactly
// three dot-joined segments carrying {userId, email, role, exp, jti}.
package token

import (
	"errors"
	"time"

	"github.com/practice-labs/loginsvc/internal/domain"
)

// Verification failure reasons. These are the only errors Verify returns.
var (
	ErrFormat  = errors.New("invalid token format")
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Claims is the identity payload embedded in a token. Exp is epoch seconds;
// Jti is a per-token nonce so repeated logins produce distinct tokens.
type Claims struct {
	UserId string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Exp    int64       `json:"exp"`
	Jti    string      `json:"jti,omitempty"`
}

type Codec interface {
	Issue(user domain.User, ttl time.Duration) (string, error)
	Verify(token string) (Claims, error)
}
