package postgres

import "gorm.io/gorm"

// Repositories bundles every postgres-backed port implementation over a
// shared connection.
type Repositories struct {
	Users     *UserRepository
	Clients   *ClientRepository
	Orders    *OrderRepository
	Tasks     *TaskRepository
	Notes     *NoteRepository
	Templates *TemplateRepository
	Reminders *ReminderRepository
	Dashboard *DashboardRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Clients:   NewClientRepository(db),
		Orders:    NewOrderRepository(db),
		Tasks:     NewTaskRepository(db),
		Notes:     NewNoteRepository(db),
		Templates: NewTemplateRepository(db),
		Reminders: NewReminderRepository(db),
		Dashboard: NewDashboardRepository(db),
	}
}
