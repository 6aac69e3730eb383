package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
)

// Store is an in-memory implementation of every repository port. It
// backs tests and local experimentation; the postgres adapter is the
// production twin and both must agree on ownership semantics.
type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]domain.User
	clients   map[uuid.UUID]domain.Client
	orders    map[uuid.UUID]domain.Order
	tasks     map[uuid.UUID]domain.Task
	notes     map[uuid.UUID]domain.OrderNote
	templates map[uuid.UUID]domain.MessageTemplate
	reminders map[uuid.UUID]domain.Reminder

	Users     *UserRepo
	Clients   *ClientRepo
	Orders    *OrderRepo
	Tasks     *TaskRepo
	Notes     *NoteRepo
	Templates *TemplateRepo
	Reminders *ReminderRepo
	Dashboard *DashboardRepo
}

func NewStore() *Store {
	store := &Store{
		users:     make(map[uuid.UUID]domain.User),
		clients:   make(map[uuid.UUID]domain.Client),
		orders:    make(map[uuid.UUID]domain.Order),
		tasks:     make(map[uuid.UUID]domain.Task),
		notes:     make(map[uuid.UUID]domain.OrderNote),
		templates: make(map[uuid.UUID]domain.MessageTemplate),
		reminders: make(map[uuid.UUID]domain.Reminder),
	}
	store.Users = &UserRepo{store: store}
	store.Clients = &ClientRepo{store: store}
	store.Orders = &OrderRepo{store: store}
	store.Tasks = &TaskRepo{store: store}
	store.Notes = &NoteRepo{store: store}
	store.Templates = &TemplateRepo{store: store}
	store.Reminders = &ReminderRepo{store: store}
	store.Dashboard = &DashboardRepo{store: store}
	return store
}

// deleteOrderLocked removes an order with its tasks, notes and
// reminders, mirroring the ON DELETE CASCADE of the SQL schema. The
// caller holds the write lock.
func (s *Store) deleteOrderLocked(orderID uuid.UUID) {
	delete(s.orders, orderID)
	for id, task := range s.tasks {
		if task.OrderID == orderID {
			delete(s.tasks, id)
		}
	}
	for id, note := range s.notes {
		if note.OrderID == orderID {
			delete(s.notes, id)
		}
	}
	for id, reminder := range s.reminders {
		if reminder.OrderID == orderID {
			delete(s.reminders, id)
		}
	}
}
