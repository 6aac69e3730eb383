package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// decodeBody parses a JSON request body strictly: unknown fields and
// trailing garbage are both rejected.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if decoder.More() {
		return fmt.Errorf("%w: request body must contain a single JSON value", domain.ErrInvalidInput)
	}
	return nil
}

// writeMappedError renders an operation error. The response for an
// authorization failure is always the same generic 401; the precise
// reason is only visible in the server log.
func writeMappedError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, code, message := mapDomainError(err)
	switch status {
	case http.StatusInternalServerError:
		httpLogger().Error("operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
			slog.String("request_id", requestIDFromContext(r.Context())),
		)
	case http.StatusUnauthorized:
		httpLogger().Warn("request rejected",
			slog.String("operation", operation),
			slog.String("reason", err.Error()),
			slog.String("request_id", requestIDFromContext(r.Context())),
		)
	}
	writeError(w, status, code, message)
}

// requireUser fetches the principal set by identityMiddleware; routes
// are wired so this cannot fail, but a missing principal still renders
// a clean 401 instead of panicking.
func requireUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return domain.User{}, false
	}
	return user, true
}
