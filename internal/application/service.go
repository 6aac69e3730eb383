package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

// Config carries the behavioral switches the service needs at runtime.
// Everything else lives behind the injected ports.
type Config struct {
	Production           bool
	BotTokenConfigured   bool
	DevAllowUserIDHeader bool
	DashboardCacheTTL    time.Duration
}

// Dependencies enumerates every port the service is wired with. The
// DashboardCache may be nil, which disables summary caching.
type Dependencies struct {
	Config    Config
	Users     ports.UserRepository
	Clients   ports.ClientRepository
	Orders    ports.OrderRepository
	Tasks     ports.TaskRepository
	Notes     ports.NoteRepository
	Templates ports.TemplateRepository
	Reminders ports.ReminderRepository
	Dashboard ports.DashboardRepository
	Cache     ports.DashboardCache
	Verifier  ports.AssertionVerifier
	Tokens    ports.SessionTokenCodec
}

// Service implements every business operation behind the HTTP surface.
type Service struct {
	cfg       Config
	users     ports.UserRepository
	clients   ports.ClientRepository
	orders    ports.OrderRepository
	tasks     ports.TaskRepository
	notes     ports.NoteRepository
	templates ports.TemplateRepository
	reminders ports.ReminderRepository
	dashboard ports.DashboardRepository
	cache     ports.DashboardCache
	verifier  ports.AssertionVerifier
	tokens    ports.SessionTokenCodec
	nowFn     func() time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:       deps.Config,
		users:     deps.Users,
		clients:   deps.Clients,
		orders:    deps.Orders,
		tasks:     deps.Tasks,
		notes:     deps.Notes,
		templates: deps.Templates,
		reminders: deps.Reminders,
		dashboard: deps.Dashboard,
		cache:     deps.Cache,
		verifier:  deps.Verifier,
		tokens:    deps.Tokens,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

func errorIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// requiredText trims and validates a mandatory string field.
func requiredText(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: field '%s' cannot be empty", domain.ErrInvalidInput, field)
	}
	return trimmed, nil
}

// optionalText resolves an Optional string to a nullable column value:
// absent and null both become nil, a value is trimmed.
func optionalText(value Optional[string]) *string {
	if !value.Set || !value.Valid {
		return nil
	}
	trimmed := strings.TrimSpace(value.Value)
	return &trimmed
}

// parsePathID parses a resource id taken from the URL path. A value that
// cannot be an id cannot name an existing row, so the failure is the
// same ErrNotFound a lookup would produce.
func parsePathID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// parseBodyID parses a relation id from a request body, where a
// malformed value is a shape error rather than a missing resource.
func parseBodyID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: field '%s' must be a valid id", domain.ErrInvalidInput, field)
	}
	return id, nil
}

// parseTimestamp parses an RFC 3339 timestamp from a request body.
func parseTimestamp(raw, field string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: field '%s' must be an RFC 3339 timestamp", domain.ErrInvalidInput, field)
	}
	return parsed.UTC(), nil
}

// guardTask completes the two-hop ownership chain for a task: the task
// row is fetched with its parent order's owner, and a mismatch is
// indistinguishable from the task not existing.
func (s *Service) guardTask(ctx context.Context, taskID, userID uuid.UUID) (domain.Task, error) {
	task, ownerID, err := s.tasks.GetWithOwner(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if ownerID != userID {
		return domain.Task{}, domain.ErrNotFound
	}
	return task, nil
}

// guardReminder is the reminder counterpart of guardTask.
func (s *Service) guardReminder(ctx context.Context, reminderID, userID uuid.UUID) (domain.Reminder, error) {
	reminder, ownerID, err := s.reminders.GetWithOwner(ctx, reminderID)
	if err != nil {
		return domain.Reminder{}, err
	}
	if ownerID != userID {
		return domain.Reminder{}, domain.ErrNotFound
	}
	return reminder, nil
}
