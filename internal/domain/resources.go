package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusInReview   OrderStatus = "IN_REVIEW"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusArchived   OrderStatus = "ARCHIVED"
)

// OrderStatuses lists every accepted status value in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusInReview,
	OrderStatusDone,
	OrderStatusArchived,
}

// ActiveOrderStatuses are the states counted as "in flight" by the order
// deadline filters and the dashboard summary.
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusInReview,
}

// ValidOrderStatus reports whether s is one of the accepted values.
func ValidOrderStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Client is a customer record owned directly by a user.
type Client struct {
	ClientID  uuid.UUID
	UserID    uuid.UUID
	Name      string
	Contact   *string
	Source    *string
	CreatedAt time.Time
}

// Order is owned directly by a user and linked to one of that user's
// clients. Client is populated on reads that join the relation.
type Order struct {
	OrderID   uuid.UUID
	UserID    uuid.UUID
	ClientID  uuid.UUID
	Title     string
	Budget    float64
	Status    OrderStatus
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Client    *Client
}

// Task belongs to an order; ownership is resolved through the order.
type Task struct {
	TaskID   uuid.UUID
	OrderID  uuid.UUID
	Title    string
	Done     bool
	Position int
}

// OrderNote belongs to an order; ownership is resolved through the order.
type OrderNote struct {
	NoteID    uuid.UUID
	OrderID   uuid.UUID
	Text      string
	CreatedAt time.Time
}

// MessageTemplate is a reusable message owned directly by a user.
type MessageTemplate struct {
	TemplateID uuid.UUID
	UserID     uuid.UUID
	Title      string
	Body       string
	CreatedAt  time.Time
}

// Reminder belongs to an order; ownership is resolved through the order.
// Sent is only a flag here: delivery scheduling lives outside this service.
type Reminder struct {
	ReminderID uuid.UUID
	OrderID    uuid.UUID
	RemindAt   time.Time
	Sent       bool
	Channel    string
	CreatedAt  time.Time
	OrderTitle string
}
