// Package validation holds the login-input validator.
//
// Field messages and their precedence are fixed: for email the checks run
// required -> format -> length and only the first failure is reported.
// Password has no length ceiling; overly long values are the resolver's
// problem, not a validation error.
package validation

import (
	"regexp"
	"strings"

	"github.com/practice-labs/loginsvc/internal/domain"
)

const (
	MsgEmailRequired    = "請輸入帳號"
	MsgEmailFormat      = "請輸入有效的 Email 格式"
	MsgEmailTooLong     = "Email 長度不可超過 255 個字元"
	MsgPasswordRequired = "請輸入密碼"
)

// MaxEmailLength applies to the trimmed email.
const MaxEmailLength = 255

// local@domain.tld shape; no whitespace or extra '@' anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Result struct {
	Valid  bool
	Errors map[string]string
}

// ValidateLoginInput checks the raw login input and returns per-field
// messages. A nil input never panics: it reports both fields as required.
func ValidateLoginInput(input *domain.Credentials) Result {
	if input == nil {
		return Result{
			Valid: false,
			Errors: map[string]string{
				"email":    MsgEmailRequired,
				"password": MsgPasswordRequired,
			},
		}
	}

	errs := make(map[string]string)

	email := strings.TrimSpace(input.Email)
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs["email"] = MsgEmailFormat
	case len(email) > MaxEmailLength:
		errs["email"] = MsgEmailTooLong
	}

	if strings.TrimSpace(input.Password) == "" {
		errs["password"] = MsgPasswordRequired
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
