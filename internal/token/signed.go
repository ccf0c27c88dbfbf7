package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/practice-labs/loginsvc/internal/domain"
)

// Signed issues HS256-signed JWTs and verifies their signatures. Same
// three-segment shape and failure reasons as Unsigned, hardened internals.
type Signed struct {
	key []byte
	now func() time.Time
}

func NewSigned(key string) *Signed {
	return &Signed{key: []byte(key), now: time.Now}
}

func (s *Signed) Issue(user domain.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.Id,
		"email":  user.Email,
		"role":   string(user.Role),
		"exp":    s.now().Add(ttl).Unix(),
		"jti":    uuid.NewString(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.key)
}

func (s *Signed) Verify(tok string) (Claims, error) {
	if strings.Count(tok, ".") != 2 {
		return Claims{}, ErrFormat
	}

	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		// Pin the algorithm family; "none" and RSA confusion are rejected.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrFormat
		default:
			return Claims{}, ErrInvalid
		}
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalid
	}
	userId, ok := mc["userId"].(string)
	if !ok {
		return Claims{}, ErrInvalid
	}
	email, ok := mc["email"].(string)
	if !ok {
		return Claims{}, ErrInvalid
	}
	role, ok := mc["role"].(string)
	if !ok {
		return Claims{}, ErrInvalid
	}
	exp, ok := mc["exp"].(float64)
	if !ok {
		return Claims{}, ErrInvalid
	}
	jti, _ := mc["jti"].(string)

	return Claims{
		UserId: userId,
		Email:  email,
		Role:   domain.Role(role),
		Exp:    int64(exp),
		Jti:    jti,
	}, nil
}
