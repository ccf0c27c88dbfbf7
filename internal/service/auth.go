package service

import (
	"time"

	"github.com/practice-labs/loginsvc/internal/directory"
	"github.com/practice-labs/loginsvc/internal/domain"
	"github.com/practice-labs/loginsvc/internal/logger"
	"github.com/practice-labs/loginsvc/internal/secret"
	"github.com/practice-labs/loginsvc/internal/token"
	"github.com/practice-labs/loginsvc/internal/validation"
)

// User-facing result messages. The AUTH_FAILED message is shared by the
// unknown-account and wrong-password paths on purpose: distinguishable
// responses would let a caller probe which accounts exist.
const (
	MsgLoginSuccess  = "登入成功"
	MsgLogoutSuccess = "登出成功"
	MsgInvalidInput  = "請輸入帳號和密碼"
	MsgAuthFailed    = "帳號或密碼不正確"
	MsgAccountLocked = "帳號已被暫時鎖定，請 30 分鐘後再試"
	MsgSystemError   = "系統錯誤，請稍後再試"
)

// Token lifetimes in seconds, surfaced to the caller as expiresIn.
const (
	SessionTTLSeconds    = 24 * 60 * 60      // 86400
	RememberMeTTLSeconds = 30 * 24 * 60 * 60 // 2592000
)

type AuthService interface {
	Login(creds *domain.Credentials) domain.LoginResult
	Logout(token string) domain.LoginResult
	VerifyToken(token string) domain.VerifyResult
}

// Auth resolves credentials against a read-only directory and issues
// time-bounded tokens. It holds no mutable state: concurrent calls are
// independent and the directory is never written.
type Auth struct {
	directory directory.Directory
	secrets   secret.Verifier
	tokens    token.Codec
	now       func() time.Time
}

func NewAuth(dir directory.Directory, secrets secret.Verifier, tokens token.Codec) *Auth {
	return &Auth{
		directory: dir,
		secrets:   secrets,
		tokens:    tokens,
		now:       time.Now,
	}
}

// Login runs the full authentication pipeline: validate input, normalize the
// email, resolve the account, check the lock, verify the secret, issue a
// token. Every failure comes back as a structured result; nothing is thrown
// across this boundary.
func (a *Auth) Login(creds *domain.Credentials) (result domain.LoginResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("login pipeline panic", "panic", r)
			result = domain.LoginResult{
				Success: false,
				Message: MsgSystemError,
				Code:    domain.CodeSystemError,
			}
		}
	}()

	if v := validation.ValidateLoginInput(creds); !v.Valid {
		return domain.LoginResult{
			Success: false,
			Message: MsgInvalidInput,
			Code:    domain.CodeInvalidInput,
			Errors:  v.Errors,
		}
	}

	email := directory.NormalizeEmail(creds.Email)
	// The password is used verbatim: trimming only applies to the emptiness
	// check inside validation, never to the compared value.
	password := creds.Password

	user, ok := a.directory.Lookup(email)
	if !ok {
		return authFailed()
	}

	if user.LockedAt(a.now()) {
		result := domain.LoginResult{
			Success: false,
			Message: MsgAccountLocked,
			Code:    domain.CodeAccountLocked,
		}
		if user.Lock != nil && !user.Lock.UnlockAt.IsZero() {
			unlockAt := user.Lock.UnlockAt
			result.UnlockAt = &unlockAt
		}
		return result
	}

	if !a.secrets.Verify(password, user.Secret) {
		return authFailed()
	}

	var expiresIn int64 = SessionTTLSeconds
	if creds.RememberMe {
		expiresIn = RememberMeTTLSeconds
	}
	tok, err := a.tokens.Issue(user, time.Duration(expiresIn)*time.Second)
	if err != nil {
		logger.Log.Error("token issue failed", "user_id", user.Id, "error", err)
		return domain.LoginResult{
			Success: false,
			Message: MsgSystemError,
			Code:    domain.CodeSystemError,
		}
	}

	return domain.LoginResult{
		Success: true,
		Message: MsgLoginSuccess,
		Data: &domain.LoginData{
			User: domain.PublicUser{
				Id:          user.Id,
				Email:       user.Email,
				DisplayName: user.DisplayName,
				Role:        user.Role,
			},
			Token:     tok,
			ExpiresIn: expiresIn,
		},
	}
}

// authFailed is the single result shape for both unknown accounts and wrong
// passwords. Keep these byte-identical.
func authFailed() domain.LoginResult {
	return domain.LoginResult{
		Success: false,
		Message: MsgAuthFailed,
		Code:    domain.CodeAuthFailed,
	}
}

// VerifyToken checks a token and extracts its identity claims. Failures are
// structured, never raised.
func (a *Auth) VerifyToken(tok string) domain.VerifyResult {
	claims, err := a.tokens.Verify(tok)
	if err != nil {
		return domain.VerifyResult{Valid: false, Message: verifyMessage(err)}
	}
	return domain.VerifyResult{
		Valid: true,
		Data: &domain.TokenData{
			UserId: claims.UserId,
			Email:  claims.Email,
			Role:   claims.Role,
		},
	}
}

func verifyMessage(err error) string {
	switch err {
	case token.ErrFormat:
		return "Invalid token format"
	case token.ErrExpired:
		return "Token expired"
	default:
		return "Invalid token"
	}
}

// Logout is stateless: tokens carry their own expiry and there is no
// server-side revocation store. The HTTP layer clears the cookie.
func (a *Auth) Logout(tok string) domain.LoginResult {
	return domain.LoginResult{Success: true, Message: MsgLogoutSuccess}
}
