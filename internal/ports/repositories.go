package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
)

// UserRepository defines persistence for principals. Upsert is keyed by
// the unique telegram_id column so repeated assertions for the same
// external identity can never produce a second row.
type UserRepository interface {
	UpsertByTelegramID(ctx context.Context, identity domain.TelegramIdentity, now time.Time) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// ClientCreateParams captures the inputs for a new client record.
type ClientCreateParams struct {
	UserID    uuid.UUID
	Name      string
	Contact   *string
	Source    *string
	CreatedAt time.Time
}

// ClientPatch carries partial updates. Nil pointer = leave unchanged;
// for nullable columns the inner pointer distinguishes clear from set.
type ClientPatch struct {
	Name    *string
	Contact **string
	Source  **string
}

// ClientRepository persists directly-owned client records. GetOwned
// filters by id and owner in one query: a foreign or absent id is the
// same ErrNotFound.
type ClientRepository interface {
	Create(ctx context.Context, params ClientCreateParams) (domain.Client, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Client, error)
	GetOwned(ctx context.Context, clientID, userID uuid.UUID) (domain.Client, error)
	Update(ctx context.Context, clientID uuid.UUID, patch ClientPatch) (domain.Client, error)
	Delete(ctx context.Context, clientID uuid.UUID) error
}

// OrderDeadlineFilter narrows order listings by deadline bucket.
type OrderDeadlineFilter string

const (
	OrderDeadlineOverdue  OrderDeadlineFilter = "overdue"
	OrderDeadlineToday    OrderDeadlineFilter = "today"
	OrderDeadlineUpcoming OrderDeadlineFilter = "upcoming"
)

// OrderListFilter is the optional narrowing applied to an order listing.
type OrderListFilter struct {
	Status   *domain.OrderStatus
	Search   string
	Deadline OrderDeadlineFilter
	Now      time.Time
}

// OrderCreateParams captures the inputs for a new order.
type OrderCreateParams struct {
	UserID    uuid.UUID
	ClientID  uuid.UUID
	Title     string
	Budget    float64
	Status    domain.OrderStatus
	Deadline  *time.Time
	CreatedAt time.Time
}

// OrderPatch carries partial order updates; Deadline's inner pointer
// distinguishes "clear the deadline" from "leave it alone".
type OrderPatch struct {
	ClientID *uuid.UUID
	Title    *string
	Budget   *float64
	Status   *domain.OrderStatus
	Deadline **time.Time
}

// OrderRepository persists directly-owned orders, always joining the
// client relation on reads that return full orders.
type OrderRepository interface {
	Create(ctx context.Context, params OrderCreateParams) (domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]domain.Order, error)
	GetOwned(ctx context.Context, orderID, userID uuid.UUID) (domain.Order, error)
	Update(ctx context.Context, orderID uuid.UUID, patch OrderPatch, updatedAt time.Time) (domain.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// TaskPatch carries partial task updates.
type TaskPatch struct {
	Title    *string
	Done     *bool
	Position *int
}

// TaskRepository persists chain-owned tasks. GetWithOwner returns the
// task together with the owning user id of its parent order so the
// caller can complete the ownership chain check.
type TaskRepository interface {
	Create(ctx context.Context, orderID uuid.UUID, title string, position int) (domain.Task, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Task, error)
	GetWithOwner(ctx context.Context, taskID uuid.UUID) (domain.Task, uuid.UUID, error)
	Update(ctx context.Context, taskID uuid.UUID, patch TaskPatch) (domain.Task, error)
}

// NoteRepository persists chain-owned order notes.
type NoteRepository interface {
	Create(ctx context.Context, orderID uuid.UUID, text string, createdAt time.Time) (domain.OrderNote, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderNote, error)
}

// TemplatePatch carries partial template updates.
type TemplatePatch struct {
	Title *string
	Body  *string
}

// TemplateRepository persists directly-owned message templates.
type TemplateRepository interface {
	Create(ctx context.Context, userID uuid.UUID, title, body string, createdAt time.Time) (domain.MessageTemplate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MessageTemplate, error)
	GetOwned(ctx context.Context, templateID, userID uuid.UUID) (domain.MessageTemplate, error)
	Update(ctx context.Context, templateID uuid.UUID, patch TemplatePatch) (domain.MessageTemplate, error)
	Delete(ctx context.Context, templateID uuid.UUID) error
}

// ReminderCreateParams captures the inputs for a new reminder.
type ReminderCreateParams struct {
	OrderID   uuid.UUID
	RemindAt  time.Time
	Sent      bool
	Channel   string
	CreatedAt time.Time
}

// ReminderPatch carries partial reminder updates. RemindAt cannot be
// cleared, only moved, so a plain pointer suffices.
type ReminderPatch struct {
	RemindAt *time.Time
	Sent     *bool
	Channel  *string
}

// ReminderRepository persists chain-owned reminders. Listing spans the
// two-hop chain: every reminder whose parent order belongs to the user.
type ReminderRepository interface {
	Create(ctx context.Context, params ReminderCreateParams) (domain.Reminder, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Reminder, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Reminder, error)
	GetWithOwner(ctx context.Context, reminderID uuid.UUID) (domain.Reminder, uuid.UUID, error)
	Update(ctx context.Context, reminderID uuid.UUID, patch ReminderPatch) (domain.Reminder, error)
	Delete(ctx context.Context, reminderID uuid.UUID) error
}

// UpcomingDeadline is one dashboard row: an in-flight order with the
// nearest future deadline.
type UpcomingDeadline struct {
	OrderID    uuid.UUID
	Title      string
	Deadline   time.Time
	ClientName string
}

// DashboardRepository serves the per-user summary aggregates. All
// queries are scoped by owner; the cache in front of this repository is
// keyed per user for the same reason.
type DashboardRepository interface {
	CountActiveOrders(ctx context.Context, userID uuid.UUID) (int64, error)
	CountOverdueOrders(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
	SumIncome(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error)
	ListUpcomingDeadlines(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]UpcomingDeadline, error)
}
