package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
)

// AssertionVerifier validates a platform-issued identity assertion (the
// Telegram WebApp initData string) and extracts the asserted identity.
// Verification is pure computation plus a wall-clock read; failures are
// wrapped domain.ErrUnauthorized values.
type AssertionVerifier interface {
	Verify(initData string) (domain.TelegramIdentity, error)
}

// SessionClaims is the decoded content of a session token. Times are
// epoch seconds, matching the wire payload.
type SessionClaims struct {
	UserID    uuid.UUID
	IssuedAt  int64
	ExpiresAt int64
}

// SessionTokenCodec issues and verifies the service's own stateless
// bearer tokens. Nothing is stored server-side: validity is recomputed
// from the signature and the embedded expiry on every call.
type SessionTokenCodec interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (SessionClaims, error)
}

// DashboardCache is an optional read-side cache for the dashboard
// summary. Get returns (nil, nil) on a miss; a nil implementation
// disables caching entirely.
type DashboardCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Put(ctx context.Context, userID uuid.UUID, payload []byte, ttl time.Duration) error
}
