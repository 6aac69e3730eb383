package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID     uuid.UUID `gorm:"column:user_id;primaryKey"`
	TelegramID int64     `gorm:"column:telegram_id"`
	Name       string    `gorm:"column:name"`
	Username   *string   `gorm:"column:username"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

type clientModel struct {
	ClientID  uuid.UUID `gorm:"column:client_id;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id"`
	Name      string    `gorm:"column:name"`
	Contact   *string   `gorm:"column:contact"`
	Source    *string   `gorm:"column:source"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (clientModel) TableName() string { return "clients" }

type orderModel struct {
	OrderID   uuid.UUID    `gorm:"column:order_id;primaryKey"`
	UserID    uuid.UUID    `gorm:"column:user_id"`
	ClientID  uuid.UUID    `gorm:"column:client_id"`
	Title     string       `gorm:"column:title"`
	Budget    float64      `gorm:"column:budget"`
	Status    string       `gorm:"column:status"`
	Deadline  *time.Time   `gorm:"column:deadline"`
	CreatedAt time.Time    `gorm:"column:created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
	Client    *clientModel `gorm:"foreignKey:ClientID;references:ClientID"`
}

func (orderModel) TableName() string { return "orders" }

type taskModel struct {
	TaskID   uuid.UUID `gorm:"column:task_id;primaryKey"`
	OrderID  uuid.UUID `gorm:"column:order_id"`
	Title    string    `gorm:"column:title"`
	Done     bool      `gorm:"column:done"`
	Position int       `gorm:"column:position"`
}

func (taskModel) TableName() string { return "tasks" }

type noteModel struct {
	NoteID    uuid.UUID `gorm:"column:note_id;primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id"`
	Text      string    `gorm:"column:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (noteModel) TableName() string { return "order_notes" }

type templateModel struct {
	TemplateID uuid.UUID `gorm:"column:template_id;primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id"`
	Title      string    `gorm:"column:title"`
	Body       string    `gorm:"column:body"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (templateModel) TableName() string { return "message_templates" }

type reminderModel struct {
	ReminderID uuid.UUID `gorm:"column:reminder_id;primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id"`
	RemindAt   time.Time `gorm:"column:remind_at"`
	Sent       bool      `gorm:"column:sent"`
	Channel    string    `gorm:"column:channel"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reminderModel) TableName() string { return "reminders" }
