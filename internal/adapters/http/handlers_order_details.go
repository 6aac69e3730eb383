package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

func (h *Handler) ListOrderTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListOrderTasks(r.Context(), chi.URLParam(r, "orderID"), user.UserID)
	if err != nil {
		writeMappedError(w, r, "list_order_tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateOrderTask(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.TaskInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_order_task", err)
		return
	}
	item, err := h.service.CreateOrderTask(r.Context(), chi.URLParam(r, "orderID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_order_task", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.TaskPatchInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_task", err)
		return
	}
	item, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_task", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) ListOrderNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListOrderNotes(r.Context(), chi.URLParam(r, "orderID"), user.UserID)
	if err != nil {
		writeMappedError(w, r, "list_order_notes", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateOrderNote(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.NoteInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_order_note", err)
		return
	}
	item, err := h.service.CreateOrderNote(r.Context(), chi.URLParam(r, "orderID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_order_note", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}
