package handler

import (
	"encoding/json"
	"net/http"

	"github.com/homerisk/homerisk/internal/config"
	"github.com/homerisk/homerisk/internal/logger"
	"github.com/homerisk/homerisk/internal/service"
	"github.com/homerisk/homerisk/internal/storage/credfile"
)

// SessionCounter exposes the tracked session count for the metrics gauge.
type SessionCounter interface {
	ActiveSessions() int
}

type Handler struct {
	auth     service.AuthService
	predict  service.PredictService
	cfg      *config.Config
	cookie   credfile.CookieConfig
	sessions SessionCounter
}

func New(auth service.AuthService, predict service.PredictService, cfg *config.Config, cookie credfile.CookieConfig, sessions SessionCounter) *Handler {
	return &Handler{
		auth:     auth,
		predict:  predict,
		cfg:      cfg,
		cookie:   cookie,
		sessions: sessions,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
