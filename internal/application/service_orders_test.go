package application

import (
	"context"
	"errors"
	"testing"

	"github.com/orderdesk/orderdesk/internal/domain"
)

func TestUpdateClient_NullClearsNullableFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")

	created, err := f.svc.CreateClient(context.Background(), alice.UserID, ClientInput{
		Name:    "Acme",
		Contact: optString("acme@example.com"),
	})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if created.Contact == nil || *created.Contact != "acme@example.com" {
		t.Fatalf("Contact = %v, want acme@example.com", created.Contact)
	}

	// Absent name stays, explicit null clears contact.
	updated, err := f.svc.UpdateClient(context.Background(), created.ID, alice.UserID, ClientPatchInput{
		Contact: optNull[string](),
	})
	if err != nil {
		t.Fatalf("UpdateClient() error = %v", err)
	}
	if updated.Contact != nil {
		t.Fatalf("Contact = %v, want nil after explicit null", updated.Contact)
	}
	if updated.Name != "Acme" {
		t.Fatalf("Name = %q, want unchanged", updated.Name)
	}
}

func TestUpdateOrder_DeadlineNullClears(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	client := f.seedClient(t, alice, "Acme")

	created, err := f.svc.CreateOrder(context.Background(), alice.UserID, OrderInput{
		ClientID: client.ID,
		Title:    "Site build",
		Budget:   optFloat(1500),
		Deadline: optString("2026-09-20T12:00:00Z"),
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if created.Deadline == nil {
		t.Fatal("Deadline = nil after create")
	}
	if created.Status != string(domain.OrderStatusNew) {
		t.Fatalf("Status = %q, want NEW", created.Status)
	}

	updated, err := f.svc.UpdateOrder(context.Background(), created.ID, alice.UserID, OrderPatchInput{
		Deadline: optNull[string](),
	})
	if err != nil {
		t.Fatalf("UpdateOrder() error = %v", err)
	}
	if updated.Deadline != nil {
		t.Fatalf("Deadline = %v, want nil after explicit null", updated.Deadline)
	}
	if updated.Budget != 1500 {
		t.Fatalf("Budget = %v, want unchanged 1500", updated.Budget)
	}
}

func TestUpdateOrderStatus_InvalidValue(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	client := f.seedClient(t, alice, "Acme")
	order := f.seedOrder(t, alice, client.ID, "Site build")

	_, err := f.svc.UpdateOrderStatus(context.Background(), order.ID, alice.UserID, OrderStatusInput{Status: "FINISHED"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("UpdateOrderStatus() error = %v, want ErrInvalidInput", err)
	}

	updated, err := f.svc.UpdateOrderStatus(context.Background(), order.ID, alice.UserID, OrderStatusInput{Status: "DONE"})
	if err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	if updated.Status != string(domain.OrderStatusDone) {
		t.Fatalf("Status = %q, want DONE", updated.Status)
	}
}

func TestListOrders_InvalidFilters(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")

	if _, err := f.svc.ListOrders(context.Background(), alice.UserID, OrdersQuery{Status: "BOGUS"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("ListOrders(bad status) error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.ListOrders(context.Background(), alice.UserID, OrdersQuery{Deadline: "yesterday"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("ListOrders(bad deadline) error = %v, want ErrInvalidInput", err)
	}
}

func TestListOrders_TenantIsolation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	bob := f.seedUser(t, 2, "Bob")
	aliceClient := f.seedClient(t, alice, "Acme")
	bobClient := f.seedClient(t, bob, "Bobs Shop")
	f.seedOrder(t, alice, aliceClient.ID, "Alice order")
	f.seedOrder(t, bob, bobClient.ID, "Bob order")

	items, err := f.svc.ListOrders(context.Background(), alice.UserID, OrdersQuery{})
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Alice order" {
		t.Fatalf("items = %+v, want only Alice's order", items)
	}
	if items[0].Client == nil || items[0].Client.Name != "Acme" {
		t.Fatalf("Client = %+v, want joined Acme", items[0].Client)
	}
}

func TestCreateReminder_Defaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	client := f.seedClient(t, alice, "Acme")
	order := f.seedOrder(t, alice, client.ID, "Site build")

	reminder, err := f.svc.CreateReminder(context.Background(), alice.UserID, ReminderInput{
		OrderID:  order.ID,
		RemindAt: "2026-09-15T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}
	if reminder.Channel != "TELEGRAM" {
		t.Fatalf("Channel = %q, want TELEGRAM", reminder.Channel)
	}
	if reminder.Sent {
		t.Fatal("Sent = true, want false by default")
	}
	if reminder.Order.Title != "Site build" {
		t.Fatalf("Order.Title = %q, want parent title", reminder.Order.Title)
	}

	if _, err := f.svc.UpdateReminder(context.Background(), reminder.ID, alice.UserID, ReminderPatchInput{
		RemindAt: optNull[string](),
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("UpdateReminder(null remindAt) error = %v, want ErrInvalidInput", err)
	}
}

func TestGetOrderDetail_Aggregate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	client := f.seedClient(t, alice, "Acme")
	order := f.seedOrder(t, alice, client.ID, "Site build")

	if _, err := f.svc.CreateOrderTask(context.Background(), order.ID, alice.UserID, TaskInput{Title: "Wireframes"}); err != nil {
		t.Fatalf("CreateOrderTask() error = %v", err)
	}
	if _, err := f.svc.CreateOrderNote(context.Background(), order.ID, alice.UserID, NoteInput{Text: "Kickoff done"}); err != nil {
		t.Fatalf("CreateOrderNote() error = %v", err)
	}
	if _, err := f.svc.CreateReminder(context.Background(), alice.UserID, ReminderInput{
		OrderID:  order.ID,
		RemindAt: "2026-09-15T10:00:00Z",
	}); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	detail, err := f.svc.GetOrderDetail(context.Background(), order.ID, alice.UserID)
	if err != nil {
		t.Fatalf("GetOrderDetail() error = %v", err)
	}
	if len(detail.Tasks) != 1 || len(detail.Notes) != 1 || len(detail.Reminders) != 1 {
		t.Fatalf("aggregate = %d tasks, %d notes, %d reminders, want 1 each",
			len(detail.Tasks), len(detail.Notes), len(detail.Reminders))
	}
}
