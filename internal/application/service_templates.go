package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
)

func (s *Service) ListTemplates(ctx context.Context, userID uuid.UUID) ([]TemplateItem, error) {
	templates, err := s.templates.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]TemplateItem, 0, len(templates))
	for _, template := range templates {
		items = append(items, toTemplateItem(template))
	}
	return items, nil
}

func (s *Service) CreateTemplate(ctx context.Context, userID uuid.UUID, input TemplateInput) (TemplateItem, error) {
	title, err := requiredText(input.Title, "title")
	if err != nil {
		return TemplateItem{}, err
	}
	body, err := requiredText(input.Body, "body")
	if err != nil {
		return TemplateItem{}, err
	}

	template, err := s.templates.Create(ctx, userID, title, body, s.nowFn())
	if err != nil {
		return TemplateItem{}, err
	}
	return toTemplateItem(template), nil
}

func (s *Service) UpdateTemplate(ctx context.Context, rawID string, userID uuid.UUID, input TemplatePatchInput) (TemplateItem, error) {
	templateID, err := parsePathID(rawID)
	if err != nil {
		return TemplateItem{}, err
	}
	if _, err := s.templates.GetOwned(ctx, templateID, userID); err != nil {
		return TemplateItem{}, err
	}

	var patch ports.TemplatePatch
	if input.Title.Set {
		if !input.Title.Valid {
			return TemplateItem{}, fmt.Errorf("%w: field 'title' cannot be null", domain.ErrInvalidInput)
		}
		title, err := requiredText(input.Title.Value, "title")
		if err != nil {
			return TemplateItem{}, err
		}
		patch.Title = &title
	}
	if input.Body.Set {
		if !input.Body.Valid {
			return TemplateItem{}, fmt.Errorf("%w: field 'body' cannot be null", domain.ErrInvalidInput)
		}
		body, err := requiredText(input.Body.Value, "body")
		if err != nil {
			return TemplateItem{}, err
		}
		patch.Body = &body
	}

	template, err := s.templates.Update(ctx, templateID, patch)
	if err != nil {
		return TemplateItem{}, err
	}
	return toTemplateItem(template), nil
}

func (s *Service) DeleteTemplate(ctx context.Context, rawID string, userID uuid.UUID) error {
	templateID, err := parsePathID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.templates.GetOwned(ctx, templateID, userID); err != nil {
		return err
	}
	return s.templates.Delete(ctx, templateID)
}
