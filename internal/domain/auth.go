package domain

import "time"

// Credentials is the raw login input. It is created per call and discarded
// after producing a LoginResult.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type ResultCode string

const (
	CodeInvalidInput  ResultCode = "INVALID_INPUT"
	CodeAuthFailed    ResultCode = "AUTH_FAILED"
	CodeAccountLocked ResultCode = "ACCOUNT_LOCKED"
	CodeSystemError   ResultCode = "SYSTEM_ERROR"
)

// PublicUser is the identity slice safe to return to callers.
// Secret material never appears here.
type PublicUser struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}

type LoginData struct {
	User      PublicUser `json:"user"`
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"`
}

// LoginResult is the structured outcome of a login attempt. Code and Errors
// are set only on failure paths; Data only on success.
type LoginResult struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Code     ResultCode        `json:"code,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	UnlockAt *time.Time        `json:"unlockAt,omitempty"`
	Data     *LoginData        `json:"data,omitempty"`
}

// TokenData is the identity extracted from a verified token.
type TokenData struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

type VerifyResult struct {
	Valid   bool       `json:"valid"`
	Message string     `json:"message,omitempty"`
	Data    *TokenData `json:"data,omitempty"`
}
