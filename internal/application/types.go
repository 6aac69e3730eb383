package application

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

// Optional distinguishes an absent JSON field from an explicit null.
// Patch endpoints need all three states: absent (leave unchanged), null
// (clear the column), and a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// TelegramLoginRequest is the POST /auth/telegram body. Exactly one of
// the two fields is expected; DevUser is honored only outside production.
type TelegramLoginRequest struct {
	InitData string        `json:"initData"`
	DevUser  *DevUserInput `json:"devUser"`
}

// DevUserInput fabricates an identity for local development logins.
type DevUserInput struct {
	TelegramID int64   `json:"telegramId"`
	Name       string  `json:"name"`
	Username   *string `json:"username"`
}

// PublicUser is the externally visible projection of a principal. The
// telegram id travels as a decimal string so JavaScript clients never
// lose precision on large ids.
type PublicUser struct {
	ID         string    `json:"id"`
	TelegramID string    `json:"telegramId"`
	Name       string    `json:"name"`
	Username   *string   `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LoginResponse is the POST /auth/telegram result.
type LoginResponse struct {
	Mode  string     `json:"mode"`
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

type ClientInput struct {
	Name    string           `json:"name"`
	Contact Optional[string] `json:"contact"`
	Source  Optional[string] `json:"source"`
}

type ClientPatchInput struct {
	Name    Optional[string] `json:"name"`
	Contact Optional[string] `json:"contact"`
	Source  Optional[string] `json:"source"`
}

type ClientItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact"`
	Source    *string   `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderInput struct {
	ClientID string            `json:"clientId"`
	Title    string            `json:"title"`
	Budget   Optional[float64] `json:"budget"`
	Status   Optional[string]  `json:"status"`
	Deadline Optional[string]  `json:"deadline"`
}

type OrderPatchInput struct {
	ClientID Optional[string]  `json:"clientId"`
	Title    Optional[string]  `json:"title"`
	Budget   Optional[float64] `json:"budget"`
	Status   Optional[string]  `json:"status"`
	Deadline Optional[string]  `json:"deadline"`
}

type OrderStatusInput struct {
	Status string `json:"status"`
}

// OrdersQuery carries the raw list filters from the URL query string.
type OrdersQuery struct {
	Status   string
	Search   string
	Deadline string
}

type OrderItem struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	ClientID  string      `json:"clientId"`
	Title     string      `json:"title"`
	Budget    float64     `json:"budget"`
	Status    string      `json:"status"`
	Deadline  *time.Time  `json:"deadline"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Client    *ClientItem `json:"client,omitempty"`
}

// OrderDetail is the full order aggregate served by GET /orders/{id}.
type OrderDetail struct {
	OrderItem
	Tasks     []TaskItem     `json:"tasks"`
	Notes     []NoteItem     `json:"notes"`
	Reminders []ReminderItem `json:"reminders"`
}

type TaskInput struct {
	Title    string        `json:"title"`
	Position Optional[int] `json:"position"`
}

type TaskPatchInput struct {
	Title    Optional[string] `json:"title"`
	Done     Optional[bool]   `json:"done"`
	Position Optional[int]    `json:"position"`
}

type TaskItem struct {
	ID       string `json:"id"`
	OrderID  string `json:"orderId"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Position int    `json:"position"`
}

type NoteInput struct {
	Text string `json:"text"`
}

type NoteItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type TemplateInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type TemplatePatchInput struct {
	Title Optional[string] `json:"title"`
	Body  Optional[string] `json:"body"`
}

type TemplateItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReminderInput struct {
	OrderID  string           `json:"orderId"`
	RemindAt string           `json:"remindAt"`
	Sent     Optional[bool]   `json:"sent"`
	Channel  Optional[string] `json:"channel"`
}

type ReminderPatchInput struct {
	RemindAt Optional[string] `json:"remindAt"`
	Sent     Optional[bool]   `json:"sent"`
	Channel  Optional[string] `json:"channel"`
}

// ReminderOrderRef is the embedded parent reference on reminder items.
type ReminderOrderRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ReminderItem struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"orderId"`
	RemindAt  time.Time        `json:"remindAt"`
	Sent      bool             `json:"sent"`
	Channel   string           `json:"channel"`
	CreatedAt time.Time        `json:"createdAt"`
	Order     ReminderOrderRef `json:"order"`
}

type UpcomingDeadlineItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Deadline   time.Time `json:"deadline"`
	ClientName string    `json:"clientName"`
}

type DashboardSummary struct {
	ActiveOrders      int64                  `json:"activeOrders"`
	OverdueOrders     int64                  `json:"overdueOrders"`
	MonthlyIncome     float64                `json:"monthlyIncome"`
	UpcomingDeadlines []UpcomingDeadlineItem `json:"upcomingDeadlines"`
}

func toPublicUser(user domain.User) PublicUser {
	return PublicUser{
		ID:         user.UserID.String(),
		TelegramID: strconv.FormatInt(user.TelegramID, 10),
		Name:       user.Name,
		Username:   user.Username,
		CreatedAt:  user.CreatedAt,
	}
}

func toClientItem(client domain.Client) ClientItem {
	return ClientItem{
		ID:        client.ClientID.String(),
		UserID:    client.UserID.String(),
		Name:      client.Name,
		Contact:   client.Contact,
		Source:    client.Source,
		CreatedAt: client.CreatedAt,
	}
}

func toOrderItem(order domain.Order) OrderItem {
	item := OrderItem{
		ID:        order.OrderID.String(),
		UserID:    order.UserID.String(),
		ClientID:  order.ClientID.String(),
		Title:     order.Title,
		Budget:    order.Budget,
		Status:    string(order.Status),
		Deadline:  order.Deadline,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if order.Client != nil {
		client := toClientItem(*order.Client)
		item.Client = &client
	}
	return item
}

func toTaskItem(task domain.Task) TaskItem {
	return TaskItem{
		ID:       task.TaskID.String(),
		OrderID:  task.OrderID.String(),
		Title:    task.Title,
		Done:     task.Done,
		Position: task.Position,
	}
}

func toNoteItem(note domain.OrderNote) NoteItem {
	return NoteItem{
		ID:        note.NoteID.String(),
		OrderID:   note.OrderID.String(),
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
	}
}

func toTemplateItem(template domain.MessageTemplate) TemplateItem {
	return TemplateItem{
		ID:        template.TemplateID.String(),
		UserID:    template.UserID.String(),
		Title:     template.Title,
		Body:      template.Body,
		CreatedAt: template.CreatedAt,
	}
}

func toReminderItem(reminder domain.Reminder) ReminderItem {
	return ReminderItem{
		ID:        reminder.ReminderID.String(),
		OrderID:   reminder.OrderID.String(),
		RemindAt:  reminder.RemindAt,
		Sent:      reminder.Sent,
		Channel:   reminder.Channel,
		CreatedAt: reminder.CreatedAt,
		Order: ReminderOrderRef{
			ID:    reminder.OrderID.String(),
			Title: reminder.OrderTitle,
		},
	}
}

func toUpcomingDeadlineItem(row ports.UpcomingDeadline) UpcomingDeadlineItem {
	return UpcomingDeadlineItem{
		ID:         row.OrderID.String(),
		Title:      row.Title,
		Deadline:   row.Deadline,
		ClientName: row.ClientName,
	}
}
