package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

func (s *Service) ListClients(ctx context.Context, userID uuid.UUID) ([]ClientItem, error) {
	clients, err := s.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ClientItem, 0, len(clients))
	for _, client := range clients {
		items = append(items, toClientItem(client))
	}
	return items, nil
}

func (s *Service) CreateClient(ctx context.Context, userID uuid.UUID, input ClientInput) (ClientItem, error) {
	name, err := requiredText(input.Name, "name")
	if err != nil {
		return ClientItem{}, err
	}
	client, err := s.clients.Create(ctx, ports.ClientCreateParams{
		UserID:    userID,
		Name:      name,
		Contact:   optionalText(input.Contact),
		Source:    optionalText(input.Source),
		CreatedAt: s.nowFn(),
	})
	if err != nil {
		return ClientItem{}, err
	}
	return toClientItem(client), nil
}

// UpdateClient applies a partial update after the ownership check.
// Absent fields stay untouched; explicit nulls clear nullable columns.
func (s *Service) UpdateClient(ctx context.Context, rawID string, userID uuid.UUID, input ClientPatchInput) (ClientItem, error) {
	clientID, err := parsePathID(rawID)
	if err != nil {
		return ClientItem{}, err
	}
	if _, err := s.clients.GetOwned(ctx, clientID, userID); err != nil {
		return ClientItem{}, err
	}

	var patch ports.ClientPatch
	if input.Name.Set {
		if !input.Name.Valid {
			return ClientItem{}, fmt.Errorf("%w: field 'name' cannot be null", domain.ErrInvalidInput)
		}
		name := strings.TrimSpace(input.Name.Value)
		if name == "" {
			return ClientItem{}, fmt.Errorf("%w: field 'name' cannot be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if input.Contact.Set {
		contact := optionalText(input.Contact)
		patch.Contact = &contact
	}
	if input.Source.Set {
		source := optionalText(input.Source)
		patch.Source = &source
	}

	client, err := s.clients.Update(ctx, clientID, patch)
	if err != nil {
		return ClientItem{}, err
	}
	return toClientItem(client), nil
}

func (s *Service) DeleteClient(ctx context.Context, rawID string, userID uuid.UUID) error {
	clientID, err := parsePathID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.clients.GetOwned(ctx, clientID, userID); err != nil {
		return err
	}
	return s.clients.Delete(ctx, clientID)
}
