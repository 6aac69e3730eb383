package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
)

// LoginWithTelegram exchanges a platform assertion (or, outside
// production, a fabricated dev identity) for a session token and the
// public projection of the principal.
func (s *Service) LoginWithTelegram(ctx context.Context, req TelegramLoginRequest) (LoginResponse, error) {
	if initData := strings.TrimSpace(req.InitData); initData != "" {
		if !s.cfg.BotTokenConfigured {
			return LoginResponse{}, fmt.Errorf("%w: bot token is not configured for telegram auth", domain.ErrInvalidInput)
		}
		identity, err := s.verifier.Verify(initData)
		if err != nil {
			return LoginResponse{}, err
		}
		return s.issueSession(ctx, "telegram", identity)
	}

	if req.DevUser != nil && !s.cfg.Production {
		identity, err := devIdentity(*req.DevUser)
		if err != nil {
			return LoginResponse{}, err
		}
		return s.issueSession(ctx, "dev", identity)
	}

	return LoginResponse{}, fmt.Errorf("%w: provide 'initData' for telegram auth", domain.ErrInvalidInput)
}

// CurrentUser returns the public projection of an authenticated
// principal, re-read from storage so the response reflects the row.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return PublicUser{}, err
	}
	return toPublicUser(user), nil
}

func (s *Service) issueSession(ctx context.Context, mode string, identity domain.TelegramIdentity) (LoginResponse, error) {
	user, err := s.users.UpsertByTelegramID(ctx, identity, s.nowFn())
	if err != nil {
		return LoginResponse{}, err
	}
	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Mode: mode, User: toPublicUser(user), Token: token}, nil
}

func devIdentity(input DevUserInput) (domain.TelegramIdentity, error) {
	if input.TelegramID <= 0 {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: devUser.telegramId must be a positive number", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: devUser.name cannot be empty", domain.ErrInvalidInput)
	}
	identity := domain.TelegramIdentity{TelegramID: input.TelegramID, Name: name}
	if input.Username != nil {
		if username := strings.TrimSpace(*input.Username); username != "" {
			identity.Username = &username
		}
	}
	return identity, nil
}
