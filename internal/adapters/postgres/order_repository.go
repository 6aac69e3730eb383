package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
	"gorm.io/gorm"
)

// OrderRepository persists directly-owned orders. Full-order reads
// preload the client relation.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func activeStatusStrings() []string {
	statuses := make([]string, 0, len(domain.ActiveOrderStatuses))
	for _, status := range domain.ActiveOrderStatuses {
		statuses = append(statuses, string(status))
	}
	return statuses
}

func (r *OrderRepository) Create(ctx context.Context, params ports.OrderCreateParams) (domain.Order, error) {
	model := orderModel{
		OrderID:   uuid.New(),
		UserID:    params.UserID,
		ClientID:  params.ClientID,
		Title:     params.Title,
		Budget:    params.Budget,
		Status:    string(params.Status),
		Deadline:  params.Deadline,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return r.getByID(ctx, model.OrderID)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ports.OrderListFilter) ([]domain.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Preload("Client").
		Where("orders.user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("orders.status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Select("orders.*").
			Joins("JOIN clients ON clients.client_id = orders.client_id").
			Where("orders.title ILIKE ? OR clients.name ILIKE ?", pattern, pattern)
	}
	switch filter.Deadline {
	case ports.OrderDeadlineOverdue:
		query = query.Where(
			"orders.deadline IS NOT NULL AND orders.deadline < ? AND orders.status IN ?",
			filter.Now, activeStatusStrings(),
		)
	case ports.OrderDeadlineToday:
		dayStart := filter.Now.UTC().Truncate(24 * time.Hour)
		query = query.Where(
			"orders.deadline >= ? AND orders.deadline < ?",
			dayStart, dayStart.Add(24*time.Hour),
		)
	case ports.OrderDeadlineUpcoming:
		query = query.Where("orders.deadline > ?", filter.Now)
	}

	var rows []orderModel
	if err := query.Order("orders.created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toDomainOrder(row))
	}
	return orders, nil
}

func (r *OrderRepository) GetOwned(ctx context.Context, orderID, userID uuid.UUID) (domain.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("order_id = ? AND user_id = ?", orderID, userID).
		Take(&row).Error
	if err != nil {
		return domain.Order{}, translateError(err)
	}
	return toDomainOrder(row), nil
}

func (r *OrderRepository) Update(ctx context.Context, orderID uuid.UUID, patch ports.OrderPatch, updatedAt time.Time) (domain.Order, error) {
	updates := map[string]any{"updated_at": updatedAt}
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Budget != nil {
		updates["budget"] = *patch.Budget
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.Deadline != nil {
		updates["deadline"] = *patch.Deadline
	}

	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("order_id = ?", orderID).
		Updates(updates).Error
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}
	return r.getByID(ctx, orderID)
}

func (r *OrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&orderModel{}).Error
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepository) getByID(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("order_id = ?", orderID).
		Take(&row).Error
	if err != nil {
		return domain.Order{}, translateError(err)
	}
	return toDomainOrder(row), nil
}
