package application

import (
	"context"
	"testing"
	"time"
)

func TestGetDashboardSummary(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	alice := f.seedUser(t, 1, "Alice")
	client := f.seedClient(t, alice, "Acme")

	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	upcoming, err := f.svc.CreateOrder(context.Background(), alice.UserID, OrderInput{
		ClientID: client.ID,
		Title:    "Upcoming job",
		Deadline: optString(tomorrow),
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if _, err := f.svc.CreateOrder(context.Background(), alice.UserID, OrderInput{
		ClientID: client.ID,
		Title:    "Late job",
		Status:   optString("IN_PROGRESS"),
		Deadline: optString(yesterday),
	}); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	paid, err := f.svc.CreateOrder(context.Background(), alice.UserID, OrderInput{
		ClientID: client.ID,
		Title:    "Paid job",
		Budget:   optFloat(500),
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if _, err := f.svc.UpdateOrderStatus(context.Background(), paid.ID, alice.UserID, OrderStatusInput{Status: "DONE"}); err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}

	summary, err := f.svc.GetDashboardSummary(context.Background(), alice.UserID)
	if err != nil {
		t.Fatalf("GetDashboardSummary() error = %v", err)
	}
	if summary.ActiveOrders != 2 {
		t.Fatalf("ActiveOrders = %d, want 2", summary.ActiveOrders)
	}
	if summary.OverdueOrders != 1 {
		t.Fatalf("OverdueOrders = %d, want 1", summary.OverdueOrders)
	}
	if summary.MonthlyIncome != 500 {
		t.Fatalf("MonthlyIncome = %v, want 500", summary.MonthlyIncome)
	}
	if len(summary.UpcomingDeadlines) != 1 || summary.UpcomingDeadlines[0].ID != upcoming.ID {
		t.Fatalf("UpcomingDeadlines = %+v, want only the upcoming job", summary.UpcomingDeadlines)
	}
	if summary.UpcomingDeadlines[0].ClientName != "Acme" {
		t.Fatalf("ClientName = %q, want Acme", summary.UpcomingDeadlines[0].ClientName)
	}
}
