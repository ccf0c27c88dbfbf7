package handler

import (
	"encoding/json"
	"net/http"

	"github.com/practice-labs/loginsvc/internal/config"
	"github.com/practice-labs/loginsvc/internal/logger"
	"github.com/practice-labs/loginsvc/internal/service"
)

type Handler struct {
	auth service.AuthService
	cfg  *config.Config
}

func New(auth service.AuthService, cfg *config.Config) *Handler {
	return &Handler{auth: auth, cfg: cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("response encoding failed", "error", err)
	}
}

// Health is a liveness probe endpoint. The directory is an in-process
// snapshot, so liveness is the only meaningful check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
