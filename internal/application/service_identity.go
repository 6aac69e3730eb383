package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// devTelegramID is the synthetic external id used by the non-production
// fallback principal. It sits far above real Telegram id ranges.
const devTelegramID int64 = 900000000001

// RequestCredentials is everything the transport layer extracts from an
// incoming request before handing identity resolution to the service.
type RequestCredentials struct {
	Authorization string
	DevUserID     string
}

// credentialStrategy inspects one credential source. A (nil, nil) return
// means the source is absent or inapplicable and resolution moves on; an
// error is terminal for the whole request.
type credentialStrategy func(ctx context.Context, creds RequestCredentials) (*domain.User, error)

// ResolveIdentity walks the credential sources in fixed precedence:
// platform assertion, then session token, then the development header,
// then the development fallback principal. The first source that is
// present decides the outcome.
func (s *Service) ResolveIdentity(ctx context.Context, creds RequestCredentials) (domain.User, error) {
	strategies := []credentialStrategy{
		s.resolveByInitData,
		s.resolveByBearerToken,
		s.resolveByDevHeader,
		s.resolveDevFallback,
	}
	for _, strategy := range strategies {
		user, err := strategy(ctx, creds)
		if err != nil {
			return domain.User{}, err
		}
		if user != nil {
			return *user, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: no credentials provided", domain.ErrUnauthorized)
}

// resolveByInitData handles "Authorization: tma <initData>". Presenting
// an assertion commits the request to this path even when the platform
// secret is missing server-side.
func (s *Service) resolveByInitData(ctx context.Context, creds RequestCredentials) (*domain.User, error) {
	initData := authorizationValue(creds.Authorization, "tma")
	if initData == "" {
		return nil, nil
	}
	if !s.cfg.BotTokenConfigured {
		return nil, fmt.Errorf("%w: bot token is not configured", domain.ErrUnauthorized)
	}
	identity, err := s.verifier.Verify(initData)
	if err != nil {
		return nil, err
	}
	user, err := s.users.UpsertByTelegramID(ctx, identity, s.nowFn())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// resolveByBearerToken handles "Authorization: Bearer <token>". The
// principal must already exist; a valid signature over a vanished user
// is still a dead credential.
func (s *Service) resolveByBearerToken(ctx context.Context, creds RequestCredentials) (*domain.User, error) {
	token := authorizationValue(creds.Authorization, "Bearer")
	if token == "" {
		return nil, nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errorIsNotFound(err) {
			return nil, fmt.Errorf("%w: user not found for auth token", domain.ErrUnauthorized)
		}
		return nil, err
	}
	return &user, nil
}

// resolveByDevHeader handles the X-User-Id escape hatch. It is inert
// unless explicitly enabled, and never active in production. A header
// that does not resolve is ignored rather than rejected so the
// remaining strategies still run.
func (s *Service) resolveByDevHeader(ctx context.Context, creds RequestCredentials) (*domain.User, error) {
	if s.cfg.Production || !s.cfg.DevAllowUserIDHeader {
		return nil, nil
	}
	raw := strings.TrimSpace(creds.DevUserID)
	if raw == "" {
		return nil, nil
	}
	userID, err := parsePathID(raw)
	if err != nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errorIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// resolveDevFallback upserts the shared local-development principal so a
// bare curl against a dev instance still lands on a stable identity.
func (s *Service) resolveDevFallback(ctx context.Context, _ RequestCredentials) (*domain.User, error) {
	if s.cfg.Production {
		return nil, nil
	}
	username := "local_dev"
	user, err := s.users.UpsertByTelegramID(ctx, domain.TelegramIdentity{
		TelegramID: devTelegramID,
		Name:       "Local Dev",
		Username:   &username,
	}, s.nowFn())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// authorizationValue extracts the credential for a given scheme from an
// Authorization header, or "" when the header uses another scheme.
func authorizationValue(header, scheme string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
