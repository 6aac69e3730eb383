package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListTemplates(r.Context(), user.UserID)
	if err != nil {
		writeMappedError(w, r, "list_templates", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.TemplateInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_template", err)
		return
	}
	item, err := h.service.CreateTemplate(r.Context(), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_template", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.TemplatePatchInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_template", err)
		return
	}
	item, err := h.service.UpdateTemplate(r.Context(), chi.URLParam(r, "templateID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_template", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTemplate(r.Context(), chi.URLParam(r, "templateID"), user.UserID); err != nil {
		writeMappedError(w, r, "delete_template", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
