package handler

import (
	"net/http"

	"github.com/homerisk/homerisk/internal/api"
	"github.com/homerisk/homerisk/internal/domain"
	"github.com/homerisk/homerisk/internal/middleware"
	"github.com/homerisk/homerisk/internal/middleware/metrics"
	"github.com/homerisk/homerisk/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.auth.Register(r.Context(), domain.Registration{
		DisplayName:     body.DisplayName,
		Username:        body.Username,
		Email:           body.Email,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.RegisterResponse{Message: "Registered successfully! You can now log in."})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, session, err := h.auth.Login(r.Context(), domain.Credentials{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(session.ExpiresAt.Sub(session.IssuedAt).Seconds())))
	metrics.ActiveSessions.Set(float64(h.sessions.ActiveSessions()))

	writeJSON(w, http.StatusOK, api.LoginResponse{
		Message:     "Welcome, " + session.DisplayName,
		DisplayName: session.DisplayName,
		AccessToken: token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSessionFromContext(r); session != nil {
		h.auth.Logout(session.Id)
		metrics.ActiveSessions.Set(float64(h.sessions.ActiveSessions()))
	}

	// Nothing server-side to revoke beyond the tracker slot; just clear
	// the client cookie.
	http.SetCookie(w, h.sessionCookie("", -1))

	writeJSON(w, http.StatusOK, api.LogoutResponse{Message: "You logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, api.MeResponse{
		Username:    session.Username,
		DisplayName: session.DisplayName,
		ExpiresAt:   session.ExpiresAt.Unix(),
	})
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     h.cookie.Name,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
