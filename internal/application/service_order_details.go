package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

func (s *Service) ListOrderTasks(ctx context.Context, rawOrderID string, userID uuid.UUID) ([]TaskItem, error) {
	orderID, err := parsePathID(rawOrderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskItem(task))
	}
	return items, nil
}

func (s *Service) CreateOrderTask(ctx context.Context, rawOrderID string, userID uuid.UUID, input TaskInput) (TaskItem, error) {
	orderID, err := parsePathID(rawOrderID)
	if err != nil {
		return TaskItem{}, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return TaskItem{}, err
	}
	title, err := requiredText(input.Title, "title")
	if err != nil {
		return TaskItem{}, err
	}
	position := 0
	if input.Position.Set && input.Position.Valid {
		position = input.Position.Value
	}

	task, err := s.tasks.Create(ctx, orderID, title, position)
	if err != nil {
		return TaskItem{}, err
	}
	return toTaskItem(task), nil
}

// UpdateTask mutates a task after walking its ownership chain through
// the parent order.
func (s *Service) UpdateTask(ctx context.Context, rawTaskID string, userID uuid.UUID, input TaskPatchInput) (TaskItem, error) {
	taskID, err := parsePathID(rawTaskID)
	if err != nil {
		return TaskItem{}, err
	}
	if _, err := s.guardTask(ctx, taskID, userID); err != nil {
		return TaskItem{}, err
	}

	var patch ports.TaskPatch
	if input.Title.Set {
		if !input.Title.Valid {
			return TaskItem{}, fmt.Errorf("%w: field 'title' cannot be null", domain.ErrInvalidInput)
		}
		title, err := requiredText(input.Title.Value, "title")
		if err != nil {
			return TaskItem{}, err
		}
		patch.Title = &title
	}
	if input.Done.Set {
		done := input.Done.Valid && input.Done.Value
		patch.Done = &done
	}
	if input.Position.Set && input.Position.Valid {
		position := input.Position.Value
		patch.Position = &position
	}

	task, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return TaskItem{}, err
	}
	return toTaskItem(task), nil
}

func (s *Service) ListOrderNotes(ctx context.Context, rawOrderID string, userID uuid.UUID) ([]NoteItem, error) {
	orderID, err := parsePathID(rawOrderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]NoteItem, 0, len(notes))
	for _, note := range notes {
		items = append(items, toNoteItem(note))
	}
	return items, nil
}

func (s *Service) CreateOrderNote(ctx context.Context, rawOrderID string, userID uuid.UUID, input NoteInput) (NoteItem, error) {
	orderID, err := parsePathID(rawOrderID)
	if err != nil {
		return NoteItem{}, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return NoteItem{}, err
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return NoteItem{}, fmt.Errorf("%w: field 'text' cannot be empty", domain.ErrInvalidInput)
	}

	note, err := s.notes.Create(ctx, orderID, text, s.nowFn())
	if err != nil {
		return NoteItem{}, err
	}
	return toNoteItem(note), nil
}
