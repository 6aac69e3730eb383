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

// DashboardRepository serves the per-user summary aggregates.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountActiveOrders(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("user_id = ? AND status IN ?", userID, activeStatusStrings()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active orders: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) CountOverdueOrders(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where(
			"user_id = ? AND status IN ? AND deadline IS NOT NULL AND deadline < ?",
			userID, activeStatusStrings(), now,
		).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count overdue orders: %w", err)
	}
	return count, nil
}

// SumIncome totals the budgets of orders completed inside [from, to).
func (r *DashboardRepository) SumIncome(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Select("COALESCE(SUM(budget), 0)").
		Where(
			"user_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?",
			userID, string(domain.OrderStatusDone), from, to,
		).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum income: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) ListUpcomingDeadlines(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]ports.UpcomingDeadline, error) {
	var rows []struct {
		OrderID    uuid.UUID `gorm:"column:order_id"`
		Title      string    `gorm:"column:title"`
		Deadline   time.Time `gorm:"column:deadline"`
		ClientName string    `gorm:"column:client_name"`
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.order_id, orders.title, orders.deadline, clients.name AS client_name").
		Joins("JOIN clients ON clients.client_id = orders.client_id").
		Where(
			"orders.user_id = ? AND orders.status IN ? AND orders.deadline IS NOT NULL AND orders.deadline >= ?",
			userID, activeStatusStrings(), now,
		).
		Order("orders.deadline ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming deadlines: %w", err)
	}

	deadlines := make([]ports.UpcomingDeadline, 0, len(rows))
	for _, row := range rows {
		deadlines = append(deadlines, ports.UpcomingDeadline{
			OrderID:    row.OrderID,
			Title:      row.Title,
			Deadline:   row.Deadline,
			ClientName: row.ClientName,
		})
	}
	return deadlines, nil
}
