package application

import (
	"context"
	"testing"
	"time"

	"github.com/orderdesk/orderdesk/internal/adapters/memory"
	"github.com/orderdesk/orderdesk/internal/adapters/security"
	"github.com/orderdesk/orderdesk/internal/domain"
)

type fixture struct {
	store *memory.Store
	codec *security.TokenCodec
	svc   *Service
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	store := memory.NewStore()
	codec := security.NewTokenCodec("test-secret", time.Hour)
	svc := NewService(Dependencies{
		Config:    cfg,
		Users:     store.Users,
		Clients:   store.Clients,
		Orders:    store.Orders,
		Tasks:     store.Tasks,
		Notes:     store.Notes,
		Templates: store.Templates,
		Reminders: store.Reminders,
		Dashboard: store.Dashboard,
		Verifier:  security.NewTelegramVerifier("123456:test-bot-token", time.Hour),
		Tokens:    codec,
	})
	return &fixture{store: store, codec: codec, svc: svc}
}

func devConfig() Config {
	return Config{Production: false, BotTokenConfigured: true}
}

func prodConfig() Config {
	return Config{Production: true, BotTokenConfigured: true}
}

func (f *fixture) seedUser(t *testing.T, telegramID int64, name string) domain.User {
	t.Helper()
	user, err := f.store.Users.UpsertByTelegramID(context.Background(), domain.TelegramIdentity{
		TelegramID: telegramID,
		Name:       name,
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *fixture) seedClient(t *testing.T, owner domain.User, name string) ClientItem {
	t.Helper()
	item, err := f.svc.CreateClient(context.Background(), owner.UserID, ClientInput{Name: name})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return item
}

func (f *fixture) seedOrder(t *testing.T, owner domain.User, clientID, title string) OrderItem {
	t.Helper()
	item, err := f.svc.CreateOrder(context.Background(), owner.UserID, OrderInput{
		ClientID: clientID,
		Title:    title,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return item
}

func optString(value string) Optional[string] {
	return Optional[string]{Set: true, Valid: true, Value: value}
}

func optNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func optFloat(value float64) Optional[float64] {
	return Optional[float64]{Set: true, Valid: true, Value: value}
}
