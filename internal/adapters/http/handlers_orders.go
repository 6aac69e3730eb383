package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderdesk/orderdesk/internal/application"
)

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	query := application.OrdersQuery{
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		Deadline: r.URL.Query().Get("deadline"),
	}
	items, err := h.service.ListOrders(r.Context(), user.UserID, query)
	if err != nil {
		writeMappedError(w, r, "list_orders", err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.OrderInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "create_order", err)
		return
	}
	item, err := h.service.CreateOrder(r.Context(), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "create_order", err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{Item: item})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	item, err := h.service.GetOrderDetail(r.Context(), chi.URLParam(r, "orderID"), user.UserID)
	if err != nil {
		writeMappedError(w, r, "get_order", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.OrderPatchInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_order", err)
		return
	}
	item, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "orderID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_order", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input application.OrderStatusInput
	if err := decodeBody(r, &input); err != nil {
		writeMappedError(w, r, "update_order_status", err)
		return
	}
	item, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), user.UserID, input)
	if err != nil {
		writeMappedError(w, r, "update_order_status", err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "orderID"), user.UserID); err != nil {
		writeMappedError(w, r, "delete_order", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
