package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
	"gorm.io/gorm"
)

// ReminderRepository persists chain-owned reminders. Reads join the
// parent order for its title and, where needed, its owner.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

type reminderRow struct {
	reminderModel
	OrderTitle string    `gorm:"column:order_title"`
	OwnerID    uuid.UUID `gorm:"column:owner_id"`
}

func (r *ReminderRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reminders").
		Select("reminders.*, orders.title AS order_title, orders.user_id AS owner_id").
		Joins("JOIN orders ON orders.order_id = reminders.order_id")
}

func (r *ReminderRepository) Create(ctx context.Context, params ports.ReminderCreateParams) (domain.Reminder, error) {
	model := reminderModel{
		ReminderID: uuid.New(),
		OrderID:    params.OrderID,
		RemindAt:   params.RemindAt,
		Sent:       params.Sent,
		Channel:    params.Channel,
		CreatedAt:  params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	return r.getByID(ctx, model.ReminderID)
}

func (r *ReminderRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Reminder, error) {
	var rows []reminderRow
	err := r.joined(ctx).
		Where("orders.user_id = ?", userID).
		Order("reminders.remind_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return toDomainReminders(rows), nil
}

func (r *ReminderRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Reminder, error) {
	var rows []reminderRow
	err := r.joined(ctx).
		Where("reminders.order_id = ?", orderID).
		Order("reminders.remind_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list order reminders: %w", err)
	}
	return toDomainReminders(rows), nil
}

func (r *ReminderRepository) GetWithOwner(ctx context.Context, reminderID uuid.UUID) (domain.Reminder, uuid.UUID, error) {
	var row reminderRow
	err := r.joined(ctx).
		Where("reminders.reminder_id = ?", reminderID).
		Take(&row).Error
	if err != nil {
		return domain.Reminder{}, uuid.Nil, translateError(err)
	}
	return toDomainReminder(row.reminderModel, row.OrderTitle), row.OwnerID, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminderID uuid.UUID, patch ports.ReminderPatch) (domain.Reminder, error) {
	updates := map[string]any{}
	if patch.RemindAt != nil {
		updates["remind_at"] = *patch.RemindAt
	}
	if patch.Sent != nil {
		updates["sent"] = *patch.Sent
	}
	if patch.Channel != nil {
		updates["channel"] = *patch.Channel
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&reminderModel{}).
			Where("reminder_id = ?", reminderID).
			Updates(updates).Error
		if err != nil {
			return domain.Reminder{}, fmt.Errorf("update reminder: %w", err)
		}
	}
	return r.getByID(ctx, reminderID)
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("reminder_id = ?", reminderID).
		Delete(&reminderModel{}).Error
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) getByID(ctx context.Context, reminderID uuid.UUID) (domain.Reminder, error) {
	var row reminderRow
	err := r.joined(ctx).
		Where("reminders.reminder_id = ?", reminderID).
		Take(&row).Error
	if err != nil {
		return domain.Reminder{}, translateError(err)
	}
	return toDomainReminder(row.reminderModel, row.OrderTitle), nil
}

func toDomainReminders(rows []reminderRow) []domain.Reminder {
	reminders := make([]domain.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, toDomainReminder(row.reminderModel, row.OrderTitle))
	}
	return reminders
}
