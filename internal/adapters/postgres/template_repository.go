package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
	"gorm.io/gorm"
)

// TemplateRepository persists directly-owned message templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, userID uuid.UUID, title, body string, createdAt time.Time) (domain.MessageTemplate, error) {
	model := templateModel{
		TemplateID: uuid.New(),
		UserID:     userID,
		Title:      title,
		Body:       body,
		CreatedAt:  createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.MessageTemplate{}, fmt.Errorf("create template: %w", err)
	}
	return toDomainTemplate(model), nil
}

func (r *TemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MessageTemplate, error) {
	var rows []templateModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	templates := make([]domain.MessageTemplate, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, toDomainTemplate(row))
	}
	return templates, nil
}

func (r *TemplateRepository) GetOwned(ctx context.Context, templateID, userID uuid.UUID) (domain.MessageTemplate, error) {
	var row templateModel
	err := r.db.WithContext(ctx).
		Where("template_id = ? AND user_id = ?", templateID, userID).
		Take(&row).Error
	if err != nil {
		return domain.MessageTemplate{}, translateError(err)
	}
	return toDomainTemplate(row), nil
}

func (r *TemplateRepository) Update(ctx context.Context, templateID uuid.UUID, patch ports.TemplatePatch) (domain.MessageTemplate, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Body != nil {
		updates["body"] = *patch.Body
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&templateModel{}).
			Where("template_id = ?", templateID).
			Updates(updates).Error
		if err != nil {
			return domain.MessageTemplate{}, fmt.Errorf("update template: %w", err)
		}
	}

	var row templateModel
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Take(&row).Error
	if err != nil {
		return domain.MessageTemplate{}, translateError(err)
	}
	return toDomainTemplate(row), nil
}

func (r *TemplateRepository) Delete(ctx context.Context, templateID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&templateModel{}).Error
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
