package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/practice-labs/loginsvc/internal/domain"
)

// opaqueSignature fills the third segment of unsigned tokens. Verify treats
// the segment as opaque and never checks it.
const opaqueSignature = "unsigned"

var segmentEncoding = base64.RawURLEncoding

// Unsigned is the teaching-mode codec: base64-encoded JSON segments with a
// constant signature segment. Verify checks structure and expiry only, so
// these tokens are time-bounded but not tamper-evident. Production wiring
// uses Signed instead.
type Unsigned struct {
	now func() time.Time
}

func NewUnsigned() *Unsigned {
	return &Unsigned{now: time.Now}
}

func (c *Unsigned) Issue(user domain.User, ttl time.Duration) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(Claims{
		UserId: user.Id,
		Email:  user.Email,
		Role:   user.Role,
		Exp:    c.now().Add(ttl).Unix(),
		Jti:    uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	parts := []string{
		segmentEncoding.EncodeToString(header),
		segmentEncoding.EncodeToString(payload),
		segmentEncoding.EncodeToString([]byte(opaqueSignature)),
	}
	return strings.Join(parts, "."), nil
}

func (c *Unsigned) Verify(tok string) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Claims{}, ErrFormat
	}

	payload, err := segmentEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalid
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalid
	}

	if claims.Exp < c.now().Unix() {
		return Claims{}, ErrExpired
	}
	return claims, nil
}
