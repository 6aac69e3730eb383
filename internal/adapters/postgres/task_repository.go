package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
	"gorm.io/gorm"
)

// TaskRepository persists chain-owned tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, orderID uuid.UUID, title string, position int) (domain.Task, error) {
	model := taskModel{
		TaskID:   uuid.New(),
		OrderID:  orderID,
		Title:    title,
		Position: position,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return toDomainTask(model), nil
}

func (r *TaskRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Task, error) {
	var rows []taskModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, toDomainTask(row))
	}
	return tasks, nil
}

// GetWithOwner joins the parent order so the caller gets the owning
// user id alongside the task in a single query.
func (r *TaskRepository) GetWithOwner(ctx context.Context, taskID uuid.UUID) (domain.Task, uuid.UUID, error) {
	var row struct {
		taskModel
		OwnerID uuid.UUID `gorm:"column:owner_id"`
	}
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.*, orders.user_id AS owner_id").
		Joins("JOIN orders ON orders.order_id = tasks.order_id").
		Where("tasks.task_id = ?", taskID).
		Take(&row).Error
	if err != nil {
		return domain.Task{}, uuid.Nil, translateError(err)
	}
	return toDomainTask(row.taskModel), row.OwnerID, nil
}

func (r *TaskRepository) Update(ctx context.Context, taskID uuid.UUID, patch ports.TaskPatch) (domain.Task, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Done != nil {
		updates["done"] = *patch.Done
	}
	if patch.Position != nil {
		updates["position"] = *patch.Position
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&taskModel{}).
			Where("task_id = ?", taskID).
			Updates(updates).Error
		if err != nil {
			return domain.Task{}, fmt.Errorf("update task: %w", err)
		}
	}

	var row taskModel
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Take(&row).Error
	if err != nil {
		return domain.Task{}, translateError(err)
	}
	return toDomainTask(row), nil
}
