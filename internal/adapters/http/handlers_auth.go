package http

import (
	"net/http"

	"github.com/orderdesk/orderdesk/internal/application"
)

type meResponse struct {
	User application.PublicUser `json:"user"`
}

// LoginTelegram exchanges a platform assertion for a session token.
func (h *Handler) LoginTelegram(w http.ResponseWriter, r *http.Request) {
	var req application.TelegramLoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMappedError(w, r, "login_telegram", err)
		return
	}
	result, err := h.service.LoginWithTelegram(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "login_telegram", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Me echoes the authenticated principal back to the caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	result, err := h.service.CurrentUser(r.Context(), user.UserID)
	if err != nil {
		writeMappedError(w, r, "current_user", err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{User: result})
}
