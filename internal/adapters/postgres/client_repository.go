package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/ports"
	"gorm.io/gorm"
)

// ClientRepository persists directly-owned client records.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, params ports.ClientCreateParams) (domain.Client, error) {
	model := clientModel{
		ClientID:  uuid.New(),
		UserID:    params.UserID,
		Name:      params.Name,
		Contact:   params.Contact,
		Source:    params.Source,
		CreatedAt: params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}
	return toDomainClient(model), nil
}

func (r *ClientRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Client, error) {
	var rows []clientModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, toDomainClient(row))
	}
	return clients, nil
}

// GetOwned filters by id and owner in one query so a foreign id and a
// nonexistent id produce the same ErrNotFound.
func (r *ClientRepository) GetOwned(ctx context.Context, clientID, userID uuid.UUID) (domain.Client, error) {
	var row clientModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND user_id = ?", clientID, userID).
		Take(&row).Error
	if err != nil {
		return domain.Client{}, translateError(err)
	}
	return toDomainClient(row), nil
}

func (r *ClientRepository) Update(ctx context.Context, clientID uuid.UUID, patch ports.ClientPatch) (domain.Client, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Contact != nil {
		updates["contact"] = *patch.Contact
	}
	if patch.Source != nil {
		updates["source"] = *patch.Source
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&clientModel{}).
			Where("client_id = ?", clientID).
			Updates(updates).Error
		if err != nil {
			return domain.Client{}, fmt.Errorf("update client: %w", err)
		}
	}

	var row clientModel
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Take(&row).Error
	if err != nil {
		return domain.Client{}, translateError(err)
	}
	return toDomainClient(row), nil
}

func (r *ClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&clientModel{}).Error
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
