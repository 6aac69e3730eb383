package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
)

func TestResolveIdentity_BearerToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	user := f.seedUser(t, 42, "Ada")

	token, err := f.codec.Issue(user.UserID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	resolved, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		Authorization: "Bearer " + token,
	})
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	if resolved.UserID != user.UserID {
		t.Fatalf("resolved %s, want %s", resolved.UserID, user.UserID)
	}
}

func TestResolveIdentity_BearerUnknownUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())

	// Valid signature over a principal that was never stored.
	token, err := f.codec.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		Authorization: "Bearer " + token,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ResolveIdentity() error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveIdentity_AssertionTakesPrecedence(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())
	user := f.seedUser(t, 42, "Ada")

	token, err := f.codec.Issue(user.UserID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// A tma credential commits the request to assertion verification;
	// the valid bearer token in the same header slot is never reached.
	_, err = f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		Authorization: "tma forged-init-data&token=" + token,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ResolveIdentity() error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveIdentity_AssertionWithoutBotToken(t *testing.T) {
	t.Parallel()
	cfg := prodConfig()
	cfg.BotTokenConfigured = false
	f := newFixture(t, cfg)

	_, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		Authorization: "tma whatever",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ResolveIdentity() error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveIdentity_DevHeader(t *testing.T) {
	t.Parallel()
	cfg := devConfig()
	cfg.DevAllowUserIDHeader = true
	f := newFixture(t, cfg)
	user := f.seedUser(t, 42, "Ada")

	resolved, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		DevUserID: user.UserID.String(),
	})
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	if resolved.UserID != user.UserID {
		t.Fatalf("resolved %s, want %s", resolved.UserID, user.UserID)
	}
}

func TestResolveIdentity_DevHeaderDisabledFallsThrough(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())
	user := f.seedUser(t, 42, "Ada")

	// Header flag off: resolution skips the header and lands on the
	// shared dev fallback principal instead of the named user.
	resolved, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		DevUserID: user.UserID.String(),
	})
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	if resolved.UserID == user.UserID {
		t.Fatal("header honored while disabled")
	}
	if resolved.TelegramID != devTelegramID {
		t.Fatalf("TelegramID = %d, want %d", resolved.TelegramID, devTelegramID)
	}
}

func TestResolveIdentity_DevHeaderIgnoredInProduction(t *testing.T) {
	t.Parallel()
	cfg := prodConfig()
	cfg.DevAllowUserIDHeader = true
	f := newFixture(t, cfg)
	user := f.seedUser(t, 42, "Ada")

	_, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{
		DevUserID: user.UserID.String(),
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ResolveIdentity() error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveIdentity_DevFallbackIsStable(t *testing.T) {
	t.Parallel()
	f := newFixture(t, devConfig())

	first, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{})
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	second, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{})
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	if first.UserID != second.UserID {
		t.Fatalf("fallback principal not stable: %s vs %s", first.UserID, second.UserID)
	}
	if first.Name != "Local Dev" {
		t.Fatalf("Name = %q, want %q", first.Name, "Local Dev")
	}
}

func TestResolveIdentity_NoCredentialsInProduction(t *testing.T) {
	t.Parallel()
	f := newFixture(t, prodConfig())

	_, err := f.svc.ResolveIdentity(context.Background(), RequestCredentials{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ResolveIdentity() error = %v, want ErrUnauthorized", err)
	}
}
