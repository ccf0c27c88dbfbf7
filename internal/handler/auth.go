package handler

import (
	"encoding/json"
	"net/http"

	"github.com/practice-labs/loginsvc/internal/domain"
	"github.com/practice-labs/loginsvc/internal/middleware"
	"github.com/practice-labs/loginsvc/internal/middleware/metrics"
)

const accessTokenCookie = "accessToken"

// Login authenticates the posted credentials and sets the access-token
// cookie on success. Whatever the outcome, the body is the structured
// login result; the status code mirrors its code.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	// An unreadable or non-JSON body is the "absent input" case: the
	// resolver turns nil into field-level required errors.
	var creds *domain.Credentials
	var body domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
		creds = &body
	}

	result := h.auth.Login(creds)

	if result.Success {
		metrics.ObserveLogin("success")
	} else {
		metrics.ObserveLogin(string(result.Code))
	}

	if result.Success && result.Data != nil {
		http.SetCookie(w, &http.Cookie{
			Path:     "/",
			Name:     accessTokenCookie,
			Value:    result.Data.Token,
			MaxAge:   int(result.Data.ExpiresIn),
			HttpOnly: true,
			Secure:   h.cfg.Public.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, statusForResult(result), result)
}

// Logout clears the access-token cookie. There is no server-side session to
// tear down; tokens age out on their own.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	tok := middleware.TokenFromRequest(r)

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, h.auth.Logout(tok))
}

// Verify reports whether the presented token is currently valid and, if so,
// the identity it carries.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	tok := middleware.TokenFromRequest(r)
	if tok == "" {
		writeJSON(w, http.StatusUnauthorized, domain.VerifyResult{Valid: false, Message: "Invalid token"})
		return
	}

	result := h.auth.VerifyToken(tok)
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, result)
}

// Me returns the identity of the authenticated caller, as populated by the
// auth middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

// AdminPing is a minimal admin-gated endpoint; the role check lives in the
// middleware.
func (h *Handler) AdminPing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func statusForResult(result domain.LoginResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Code {
	case domain.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeAuthFailed:
		return http.StatusUnauthorized
	case domain.CodeAccountLocked:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}
