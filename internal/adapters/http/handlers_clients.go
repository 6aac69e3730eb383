package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListClients(r.Context(), user.UserID)
	if err != nil {
		writeMappedError(w, r, "list_clients", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.ClientInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_client", err)
		return
	}
	item, err := h.service.CreateClient(r.Context(), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_client", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.ClientPatchInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_client", err)
		return
	}
	item, err := h.service.UpdateClient(r.Context(), chi.URLParam(r, "clientID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_client", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteClient(r.Context(), chi.URLParam(r, "clientID"), user.UserID); err != nil {
		writeMappedError(w, r, "delete_client", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
