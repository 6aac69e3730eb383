package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID, query OrdersQuery) ([]OrderItem, error) {
	filter := ports.OrderListFilter{
		Search: strings.TrimSpace(query.Search),
		Now:    s.nowFn(),
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := domain.OrderStatus(raw)
		if !domain.ValidOrderStatus(status) {
			return nil, fmt.Errorf("%w: query parameter 'status' has invalid value", domain.ErrInvalidInput)
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(query.Deadline); raw != "" {
		deadline := ports.OrderDeadlineFilter(raw)
		switch deadline {
		case ports.OrderDeadlineOverdue, ports.OrderDeadlineToday, ports.OrderDeadlineUpcoming:
			filter.Deadline = deadline
		default:
			return nil, fmt.Errorf("%w: query parameter 'deadline' has invalid value", domain.ErrInvalidInput)
		}
	}

	orders, err := s.orders.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]OrderItem, 0, len(orders))
	for _, order := range orders {
		items = append(items, toOrderItem(order))
	}
	return items, nil
}

// CreateOrder guards the referenced client before inserting: an order
// can only ever point at a client of the same owner.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, input OrderInput) (OrderItem, error) {
	clientID, err := parseBodyID(input.ClientID, "clientId")
	if err != nil {
		return OrderItem{}, err
	}
	if _, err := s.clients.GetOwned(ctx, clientID, userID); err != nil {
		return OrderItem{}, err
	}
	title, err := requiredText(input.Title, "title")
	if err != nil {
		return OrderItem{}, err
	}

	params := ports.OrderCreateParams{
		UserID:    userID,
		ClientID:  clientID,
		Title:     title,
		Status:    domain.OrderStatusNew,
		CreatedAt: s.nowFn(),
	}
	if input.Budget.Set && input.Budget.Valid {
		params.Budget = input.Budget.Value
	}
	if input.Status.Set && input.Status.Valid {
		status, err := parseOrderStatus(input.Status.Value)
		if err != nil {
			return OrderItem{}, err
		}
		params.Status = status
	}
	if input.Deadline.Set && input.Deadline.Valid && strings.TrimSpace(input.Deadline.Value) != "" {
		deadline, err := parseTimestamp(input.Deadline.Value, "deadline")
		if err != nil {
			return OrderItem{}, err
		}
		params.Deadline = &deadline
	}

	order, err := s.orders.Create(ctx, params)
	if err != nil {
		return OrderItem{}, err
	}
	return toOrderItem(order), nil
}

// GetOrderDetail returns the order with its tasks, notes and reminders.
func (s *Service) GetOrderDetail(ctx context.Context, rawID string, userID uuid.UUID) (OrderDetail, error) {
	orderID, err := parsePathID(rawID)
	if err != nil {
		return OrderDetail{}, err
	}
	order, err := s.orders.GetOwned(ctx, orderID, userID)
	if err != nil {
		return OrderDetail{}, err
	}

	tasks, err := s.tasks.ListByOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	notes, err := s.notes.ListByOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	reminders, err := s.reminders.ListByOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}

	detail := OrderDetail{
		OrderItem: toOrderItem(order),
		Tasks:     make([]TaskItem, 0, len(tasks)),
		Notes:     make([]NoteItem, 0, len(notes)),
		Reminders: make([]ReminderItem, 0, len(reminders)),
	}
	for _, task := range tasks {
		detail.Tasks = append(detail.Tasks, toTaskItem(task))
	}
	for _, note := range notes {
		detail.Notes = append(detail.Notes, toNoteItem(note))
	}
	for _, reminder := range reminders {
		detail.Reminders = append(detail.Reminders, toReminderItem(reminder))
	}
	return detail, nil
}

// UpdateOrder applies a partial update. Re-pointing the order at a
// different client re-runs the ownership check for the new client.
func (s *Service) UpdateOrder(ctx context.Context, rawID string, userID uuid.UUID, input OrderPatchInput) (OrderItem, error) {
	orderID, err := parsePathID(rawID)
	if err != nil {
		return OrderItem{}, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return OrderItem{}, err
	}

	var patch ports.OrderPatch
	if input.ClientID.Set {
		if !input.ClientID.Valid {
			return OrderItem{}, fmt.Errorf("%w: field 'clientId' cannot be null", domain.ErrInvalidInput)
		}
		clientID, err := parseBodyID(input.ClientID.Value, "clientId")
		if err != nil {
			return OrderItem{}, err
		}
		if _, err := s.clients.GetOwned(ctx, clientID, userID); err != nil {
			return OrderItem{}, err
		}
		patch.ClientID = &clientID
	}
	if input.Title.Set {
		if !input.Title.Valid {
			return OrderItem{}, fmt.Errorf("%w: field 'title' cannot be null", domain.ErrInvalidInput)
		}
		title, err := requiredText(input.Title.Value, "title")
		if err != nil {
			return OrderItem{}, err
		}
		patch.Title = &title
	}
	if input.Budget.Set {
		budget := 0.0
		if input.Budget.Valid {
			budget = input.Budget.Value
		}
		patch.Budget = &budget
	}
	if input.Status.Set {
		if !input.Status.Valid {
			return OrderItem{}, fmt.Errorf("%w: field 'status' cannot be null", domain.ErrInvalidInput)
		}
		status, err := parseOrderStatus(input.Status.Value)
		if err != nil {
			return OrderItem{}, err
		}
		patch.Status = &status
	}
	if input.Deadline.Set {
		var deadline *time.Time
		if input.Deadline.Valid && strings.TrimSpace(input.Deadline.Value) != "" {
			parsed, err := parseTimestamp(input.Deadline.Value, "deadline")
			if err != nil {
				return OrderItem{}, err
			}
			deadline = &parsed
		}
		patch.Deadline = &deadline
	}

	order, err := s.orders.Update(ctx, orderID, patch, s.nowFn())
	if err != nil {
		return OrderItem{}, err
	}
	return toOrderItem(order), nil
}

// UpdateOrderStatus is the dedicated status transition endpoint.
func (s *Service) UpdateOrderStatus(ctx context.Context, rawID string, userID uuid.UUID, input OrderStatusInput) (OrderItem, error) {
	orderID, err := parsePathID(rawID)
	if err != nil {
		return OrderItem{}, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return OrderItem{}, err
	}
	status, err := parseOrderStatus(input.Status)
	if err != nil {
		return OrderItem{}, err
	}

	order, err := s.orders.Update(ctx, orderID, ports.OrderPatch{Status: &status}, s.nowFn())
	if err != nil {
		return OrderItem{}, err
	}
	return toOrderItem(order), nil
}

func (s *Service) DeleteOrder(ctx context.Context, rawID string, userID uuid.UUID) error {
	orderID, err := parsePathID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return err
	}
	return s.orders.Delete(ctx, orderID)
}

func parseOrderStatus(raw string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(strings.TrimSpace(raw))
	if !domain.ValidOrderStatus(status) {
		return "", fmt.Errorf("%w: field 'status' has invalid value", domain.ErrInvalidInput)
	}
	return status, nil
}
