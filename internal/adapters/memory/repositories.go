package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	store *Store
}

func (r *UserRepo) UpsertByTelegramID(_ context.Context, identity domain.TelegramIdentity, now time.Time) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, user := range r.store.users {
		if user.TelegramID == identity.TelegramID {
			user.Name = identity.Name
			user.Username = identity.Username
			r.store.users[id] = user
			return user, nil
		}
	}
	user := domain.User{
		UserID:     uuid.New(),
		TelegramID: identity.TelegramID,
		Name:       identity.Name,
		Username:   identity.Username,
		CreatedAt:  now,
	}
	r.store.users[user.UserID] = user
	return user, nil
}

func (r *UserRepo) GetByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

// ClientRepo implements ports.ClientRepository.
type ClientRepo struct {
	store *Store
}

func (r *ClientRepo) Create(_ context.Context, params ports.ClientCreateParams) (domain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	client := domain.Client{
		ClientID:  uuid.New(),
		UserID:    params.UserID,
		Name:      params.Name,
		Contact:   params.Contact,
		Source:    params.Source,
		CreatedAt: params.CreatedAt,
	}
	r.store.clients[client.ClientID] = client
	return client, nil
}

func (r *ClientRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	clients := make([]domain.Client, 0)
	for _, client := range r.store.clients {
		if client.UserID == userID {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

func (r *ClientRepo) GetOwned(_ context.Context, clientID, userID uuid.UUID) (domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	client, ok := r.store.clients[clientID]
	if !ok || client.UserID != userID {
		return domain.Client{}, domain.ErrNotFound
	}
	return client, nil
}

func (r *ClientRepo) Update(_ context.Context, clientID uuid.UUID, patch ports.ClientPatch) (domain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	client, ok := r.store.clients[clientID]
	if !ok {
		return domain.Client{}, domain.ErrNotFound
	}
	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.Contact != nil {
		client.Contact = *patch.Contact
	}
	if patch.Source != nil {
		client.Source = *patch.Source
	}
	r.store.clients[clientID] = client
	return client, nil
}

func (r *ClientRepo) Delete(_ context.Context, clientID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.clients, clientID)
	for orderID, order := range r.store.orders {
		if order.ClientID == clientID {
			r.store.deleteOrderLocked(orderID)
		}
	}
	return nil
}

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	store *Store
}

func (r *OrderRepo) Create(_ context.Context, params ports.OrderCreateParams) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order := domain.Order{
		OrderID:   uuid.New(),
		UserID:    params.UserID,
		ClientID:  params.ClientID,
		Title:     params.Title,
		Budget:    params.Budget,
		Status:    params.Status,
		Deadline:  params.Deadline,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	r.store.orders[order.OrderID] = order
	return r.withClientLocked(order), nil
}

func (r *OrderRepo) ListByUser(_ context.Context, userID uuid.UUID, filter ports.OrderListFilter) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	orders := make([]domain.Order, 0)
	for _, order := range r.store.orders {
		if order.UserID != userID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !r.matchesSearchLocked(order, filter.Search) {
			continue
		}
		if !matchesDeadline(order, filter) {
			continue
		}
		orders = append(orders, r.withClientLocked(order))
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *OrderRepo) matchesSearchLocked(order domain.Order, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(order.Title), needle) {
		return true
	}
	if client, ok := r.store.clients[order.ClientID]; ok {
		return strings.Contains(strings.ToLower(client.Name), needle)
	}
	return false
}

func matchesDeadline(order domain.Order, filter ports.OrderListFilter) bool {
	switch filter.Deadline {
	case ports.OrderDeadlineOverdue:
		if order.Deadline == nil || !order.Deadline.Before(filter.Now) {
			return false
		}
		for _, status := range domain.ActiveOrderStatuses {
			if order.Status == status {
				return true
			}
		}
		return false
	case ports.OrderDeadlineToday:
		if order.Deadline == nil {
			return false
		}
		dayStart := filter.Now.UTC().Truncate(24 * time.Hour)
		return !order.Deadline.Before(dayStart) && order.Deadline.Before(dayStart.Add(24*time.Hour))
	case ports.OrderDeadlineUpcoming:
		return order.Deadline != nil && order.Deadline.After(filter.Now)
	default:
		return true
	}
}

func (r *OrderRepo) GetOwned(_ context.Context, orderID, userID uuid.UUID) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	order, ok := r.store.orders[orderID]
	if !ok || order.UserID != userID {
		return domain.Order{}, domain.ErrNotFound
	}
	return r.withClientLocked(order), nil
}

func (r *OrderRepo) Update(_ context.Context, orderID uuid.UUID, patch ports.OrderPatch, updatedAt time.Time) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	if patch.ClientID != nil {
		order.ClientID = *patch.ClientID
	}
	if patch.Title != nil {
		order.Title = *patch.Title
	}
	if patch.Budget != nil {
		order.Budget = *patch.Budget
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Deadline != nil {
		order.Deadline = *patch.Deadline
	}
	order.UpdatedAt = updatedAt
	r.store.orders[orderID] = order
	return r.withClientLocked(order), nil
}

func (r *OrderRepo) Delete(_ context.Context, orderID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.deleteOrderLocked(orderID)
	return nil
}

func (r *OrderRepo) withClientLocked(order domain.Order) domain.Order {
	if client, ok := r.store.clients[order.ClientID]; ok {
		order.Client = &client
	}
	return order
}

// TaskRepo implements ports.TaskRepository.
type TaskRepo struct {
	store *Store
}

func (r *TaskRepo) Create(_ context.Context, orderID uuid.UUID, title string, position int) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	task := domain.Task{
		TaskID:   uuid.New(),
		OrderID:  orderID,
		Title:    title,
		Position: position,
	}
	r.store.tasks[task.TaskID] = task
	return task, nil
}

func (r *TaskRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tasks := make([]domain.Task, 0)
	for _, task := range r.store.tasks {
		if task.OrderID == orderID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})
	return tasks, nil
}

func (r *TaskRepo) GetWithOwner(_ context.Context, taskID uuid.UUID) (domain.Task, uuid.UUID, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	task, ok := r.store.tasks[taskID]
	if !ok {
		return domain.Task{}, uuid.Nil, domain.ErrNotFound
	}
	order, ok := r.store.orders[task.OrderID]
	if !ok {
		return domain.Task{}, uuid.Nil, domain.ErrNotFound
	}
	return task, order.UserID, nil
}

func (r *TaskRepo) Update(_ context.Context, taskID uuid.UUID, patch ports.TaskPatch) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	task, ok := r.store.tasks[taskID]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Done != nil {
		task.Done = *patch.Done
	}
	if patch.Position != nil {
		task.Position = *patch.Position
	}
	r.store.tasks[taskID] = task
	return task, nil
}

// NoteRepo implements ports.NoteRepository.
type NoteRepo struct {
	store *Store
}

func (r *NoteRepo) Create(_ context.Context, orderID uuid.UUID, text string, createdAt time.Time) (domain.OrderNote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	note := domain.OrderNote{
		NoteID:    uuid.New(),
		OrderID:   orderID,
		Text:      text,
		CreatedAt: createdAt,
	}
	r.store.notes[note.NoteID] = note
	return note, nil
}

func (r *NoteRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]domain.OrderNote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	notes := make([]domain.OrderNote, 0)
	for _, note := range r.store.notes {
		if note.OrderID == orderID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

// TemplateRepo implements ports.TemplateRepository.
type TemplateRepo struct {
	store *Store
}

func (r *TemplateRepo) Create(_ context.Context, userID uuid.UUID, title, body string, createdAt time.Time) (domain.MessageTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	template := domain.MessageTemplate{
		TemplateID: uuid.New(),
		UserID:     userID,
		Title:      title,
		Body:       body,
		CreatedAt:  createdAt,
	}
	r.store.templates[template.TemplateID] = template
	return template, nil
}

func (r *TemplateRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	templates := make([]domain.MessageTemplate, 0)
	for _, template := range r.store.templates {
		if template.UserID == userID {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
	return templates, nil
}

func (r *TemplateRepo) GetOwned(_ context.Context, templateID, userID uuid.UUID) (domain.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	template, ok := r.store.templates[templateID]
	if !ok || template.UserID != userID {
		return domain.MessageTemplate{}, domain.ErrNotFound
	}
	return template, nil
}

func (r *TemplateRepo) Update(_ context.Context, templateID uuid.UUID, patch ports.TemplatePatch) (domain.MessageTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	template, ok := r.store.templates[templateID]
	if !ok {
		return domain.MessageTemplate{}, domain.ErrNotFound
	}
	if patch.Title != nil {
		template.Title = *patch.Title
	}
	if patch.Body != nil {
		template.Body = *patch.Body
	}
	r.store.templates[templateID] = template
	return template, nil
}

func (r *TemplateRepo) Delete(_ context.Context, templateID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.templates, templateID)
	return nil
}

// ReminderRepo implements ports.ReminderRepository.
type ReminderRepo struct {
	store *Store
}

func (r *ReminderRepo) Create(_ context.Context, params ports.ReminderCreateParams) (domain.Reminder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	reminder := domain.Reminder{
		ReminderID: uuid.New(),
		OrderID:    params.OrderID,
		RemindAt:   params.RemindAt,
		Sent:       params.Sent,
		Channel:    params.Channel,
		CreatedAt:  params.CreatedAt,
	}
	r.store.reminders[reminder.ReminderID] = reminder
	return r.withTitleLocked(reminder), nil
}

func (r *ReminderRepo) ListByOwner(_ context.Context, userID uuid.UUID) ([]domain.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	reminders := make([]domain.Reminder, 0)
	for _, reminder := range r.store.reminders {
		order, ok := r.store.orders[reminder.OrderID]
		if ok && order.UserID == userID {
			reminders = append(reminders, r.withTitleLocked(reminder))
		}
	}
	sortRemindersByTime(reminders)
	return reminders, nil
}

func (r *ReminderRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]domain.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	reminders := make([]domain.Reminder, 0)
	for _, reminder := range r.store.reminders {
		if reminder.OrderID == orderID {
			reminders = append(reminders, r.withTitleLocked(reminder))
		}
	}
	sortRemindersByTime(reminders)
	return reminders, nil
}

func (r *ReminderRepo) GetWithOwner(_ context.Context, reminderID uuid.UUID) (domain.Reminder, uuid.UUID, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	reminder, ok := r.store.reminders[reminderID]
	if !ok {
		return domain.Reminder{}, uuid.Nil, domain.ErrNotFound
	}
	order, ok := r.store.orders[reminder.OrderID]
	if !ok {
		return domain.Reminder{}, uuid.Nil, domain.ErrNotFound
	}
	return r.withTitleLocked(reminder), order.UserID, nil
}

func (r *ReminderRepo) Update(_ context.Context, reminderID uuid.UUID, patch ports.ReminderPatch) (domain.Reminder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	reminder, ok := r.store.reminders[reminderID]
	if !ok {
		return domain.Reminder{}, domain.ErrNotFound
	}
	if patch.RemindAt != nil {
		reminder.RemindAt = *patch.RemindAt
	}
	if patch.Sent != nil {
		reminder.Sent = *patch.Sent
	}
	if patch.Channel != nil {
		reminder.Channel = *patch.Channel
	}
	r.store.reminders[reminderID] = reminder
	return r.withTitleLocked(reminder), nil
}

func (r *ReminderRepo) Delete(_ context.Context, reminderID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.reminders, reminderID)
	return nil
}

func (r *ReminderRepo) withTitleLocked(reminder domain.Reminder) domain.Reminder {
	if order, ok := r.store.orders[reminder.OrderID]; ok {
		reminder.OrderTitle = order.Title
	}
	return reminder
}

func sortRemindersByTime(reminders []domain.Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].RemindAt.Before(reminders[j].RemindAt)
	})
}

// DashboardRepo implements ports.DashboardRepository.
type DashboardRepo struct {
	store *Store
}

func isActiveStatus(status domain.OrderStatus) bool {
	for _, active := range domain.ActiveOrderStatuses {
		if status == active {
			return true
		}
	}
	return false
}

func (r *DashboardRepo) CountActiveOrders(_ context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, order := range r.store.orders {
		if order.UserID == userID && isActiveStatus(order.Status) {
			count++
		}
	}
	return count, nil
}

func (r *DashboardRepo) CountOverdueOrders(_ context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, order := range r.store.orders {
		if order.UserID == userID && isActiveStatus(order.Status) &&
			order.Deadline != nil && order.Deadline.Before(now) {
			count++
		}
	}
	return count, nil
}

func (r *DashboardRepo) SumIncome(_ context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total float64
	for _, order := range r.store.orders {
		if order.UserID == userID && order.Status == domain.OrderStatusDone &&
			!order.UpdatedAt.Before(from) && order.UpdatedAt.Before(to) {
			total += order.Budget
		}
	}
	return total, nil
}

func (r *DashboardRepo) ListUpcomingDeadlines(_ context.Context, userID uuid.UUID, now time.Time, limit int) ([]ports.UpcomingDeadline, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	deadlines := make([]ports.UpcomingDeadline, 0)
	for _, order := range r.store.orders {
		if order.UserID != userID || !isActiveStatus(order.Status) {
			continue
		}
		if order.Deadline == nil || order.Deadline.Before(now) {
			continue
		}
		row := ports.UpcomingDeadline{
			OrderID:  order.OrderID,
			Title:    order.Title,
			Deadline: *order.Deadline,
		}
		if client, ok := r.store.clients[order.ClientID]; ok {
			row.ClientName = client.Name
		}
		deadlines = append(deadlines, row)
	}
	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Deadline.Before(deadlines[j].Deadline)
	})
	if limit > 0 && len(deadlines) > limit {
		deadlines = deadlines[:limit]
	}
	return deadlines, nil
}
