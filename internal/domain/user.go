package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal every owned resource hangs off.
// TelegramID is the immutable external identity; Name and Username are
// refreshed on every successful identity assertion.
type User struct {
	UserID     uuid.UUID
	TelegramID int64
	Name       string
	Username   *string
	CreatedAt  time.Time
}

// TelegramIdentity is the transient result of a verified platform
// assertion. It is never persisted; it only feeds the user upsert.
type TelegramIdentity struct {
	TelegramID int64
	Name       string
	Username   *string
}
