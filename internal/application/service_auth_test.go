package application

import (
	"context"
	"errors"
	"testing"

	"github.com/orderdesk/orderdesk/internal/domain"
)

func TestLoginWithTelegram_DevUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())

	username := "ada"
	result, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{
		DevUser: &DevUserInput{TelegramID: 42, Name: "Ada", Username: &username},
	})
	if err != nil {
		t.Fatalf("LoginWithTelegram() error = %v", err)
	}
	if result.Mode != "dev" {
		t.Fatalf("Mode = %q, want dev", result.Mode)
	}
	if result.User.TelegramID != "42" {
		t.Fatalf("TelegramID = %q, want \"42\"", result.User.TelegramID)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}

	claims, err := f.codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify(issued token) error = %v", err)
	}
	if claims.UserID.String() != result.User.ID {
		t.Fatalf("token user %s, response user %s", claims.UserID, result.User.ID)
	}
}

func TestLoginWithTelegram_DevUserRejectedInProduction(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())

	_, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{
		DevUser: &DevUserInput{TelegramID: 42, Name: "Ada"},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("LoginWithTelegram() error = %v, want ErrInvalidInput", err)
	}
}

func TestLoginWithTelegram_EmptyRequest(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())

	_, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("LoginWithTelegram() error = %v, want ErrInvalidInput", err)
	}
}

func TestLoginWithTelegram_InvalidDevUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())

	cases := map[string]DevUserInput{
		"zero telegram id": {TelegramID: 0, Name: "Ada"},
		"blank name":       {TelegramID: 42, Name: "   "},
	}
	for name, input := range cases {
		devUser := input
		_, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{DevUser: &devUser})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: error = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestLoginWithTelegram_InitDataWithoutBotToken(t *testing.T) {
	t.Parallel()
	cfg := devConfig()
	cfg.BotTokenConfigured = false
	f := newFixture(t, cfg)

	_, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{InitData: "whatever"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("LoginWithTelegram() error = %v, want ErrInvalidInput", err)
	}
}

func TestLoginWithTelegram_UpsertRefreshesProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())

	first, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{
		DevUser: &DevUserInput{TelegramID: 42, Name: "Ada"},
	})
	if err != nil {
		t.Fatalf("first login error = %v", err)
	}
	second, err := f.svc.LoginWithTelegram(context.Background(), TelegramLoginRequest{
		DevUser: &DevUserInput{TelegramID: 42, Name: "Ada Lovelace"},
	})
	if err != nil {
		t.Fatalf("second login error = %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Fatalf("same identity produced two principals: %s vs %s", first.User.ID, second.User.ID)
	}
	if second.User.Name != "Ada Lovelace" {
		t.Fatalf("Name = %q, want refreshed %q", second.User.Name, "Ada Lovelace")
	}
}
