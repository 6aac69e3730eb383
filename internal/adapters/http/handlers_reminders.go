package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListReminders(r.Context(), user.UserID)
	if err != nil {
		writeMappedError(w, r, "list_reminders", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.ReminderInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_reminder", err)
		return
	}
	item, err := h.service.CreateReminder(r.Context(), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_reminder", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}

func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.ReminderPatchInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_reminder", err)
		return
	}
	item, err := h.service.UpdateReminder(r.Context(), chi.URLParam(r, "reminderID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_reminder", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteReminder(r.Context(), chi.URLParam(r, "reminderID"), user.UserID); err != nil {
		writeMappedError(w, r, "delete_reminder", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
