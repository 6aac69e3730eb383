package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

// defaultReminderChannel is the delivery channel assumed when a reminder
// is created without one.
const defaultReminderChannel = "TELEGRAM"

func (s *Service) ListReminders(ctx context.Context, userID uuid.UUID) ([]ReminderItem, error) {
	reminders, err := s.reminders.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ReminderItem, 0, len(reminders))
	for _, reminder := range reminders {
		items = append(items, toReminderItem(reminder))
	}
	return items, nil
}

// CreateReminder guards the parent order: reminders attach only to
// orders the caller owns.
func (s *Service) CreateReminder(ctx context.Context, userID uuid.UUID, input ReminderInput) (ReminderItem, error) {
	orderID, err := parseBodyID(input.OrderID, "orderId")
	if err != nil {
		return ReminderItem{}, err
	}
	if _, err := s.orders.GetOwned(ctx, orderID, userID); err != nil {
		return ReminderItem{}, err
	}
	remindAt, err := parseTimestamp(input.RemindAt, "remindAt")
	if err != nil {
		return ReminderItem{}, err
	}

	params := ports.ReminderCreateParams{
		OrderID:   orderID,
		RemindAt:  remindAt,
		Channel:   defaultReminderChannel,
		CreatedAt: s.nowFn(),
	}
	if input.Sent.Set && input.Sent.Valid {
		params.Sent = input.Sent.Value
	}
	if input.Channel.Set && input.Channel.Valid {
		if channel := strings.TrimSpace(input.Channel.Value); channel != "" {
			params.Channel = channel
		}
	}

	reminder, err := s.reminders.Create(ctx, params)
	if err != nil {
		return ReminderItem{}, err
	}
	return toReminderItem(reminder), nil
}

// UpdateReminder applies a partial update after walking the ownership
// chain. A reminder always fires at some point, so remindAt can be
// moved but never nulled.
func (s *Service) UpdateReminder(ctx context.Context, rawID string, userID uuid.UUID, input ReminderPatchInput) (ReminderItem, error) {
	reminderID, err := parsePathID(rawID)
	if err != nil {
		return ReminderItem{}, err
	}
	if _, err := s.guardReminder(ctx, reminderID, userID); err != nil {
		return ReminderItem{}, err
	}

	var patch ports.ReminderPatch
	if input.RemindAt.Set {
		if !input.RemindAt.Valid {
			return ReminderItem{}, fmt.Errorf("%w: field 'remindAt' cannot be null", domain.ErrInvalidInput)
		}
		remindAt, err := parseTimestamp(input.RemindAt.Value, "remindAt")
		if err != nil {
			return ReminderItem{}, err
		}
		patch.RemindAt = &remindAt
	}
	if input.Sent.Set {
		sent := input.Sent.Valid && input.Sent.Value
		patch.Sent = &sent
	}
	if input.Channel.Set {
		if !input.Channel.Valid {
			return ReminderItem{}, fmt.Errorf("%w: field 'channel' cannot be null", domain.ErrInvalidInput)
		}
		channel, err := requiredText(input.Channel.Value, "channel")
		if err != nil {
			return ReminderItem{}, err
		}
		patch.Channel = &channel
	}

	reminder, err := s.reminders.Update(ctx, reminderID, patch)
	if err != nil {
		return ReminderItem{}, err
	}
	return toReminderItem(reminder), nil
}

func (s *Service) DeleteReminder(ctx context.Context, rawID string, userID uuid.UUID) error {
	reminderID, err := parsePathID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.guardReminder(ctx, reminderID, userID); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, reminderID)
}
