package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"gorm.io/gorm"
)

// NoteRepository persists chain-owned order notes.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, orderID uuid.UUID, text string, createdAt time.Time) (domain.OrderNote, error) {
	model := noteModel{
		NoteID:    uuid.New(),
		OrderID:   orderID,
		Text:      text,
		CreatedAt: createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.OrderNote{}, fmt.Errorf("create note: %w", err)
	}
	return toDomainNote(model), nil
}

func (r *NoteRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderNote, error) {
	var rows []noteModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	notes := make([]domain.OrderNote, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, toDomainNote(row))
	}
	return notes, nil
}
