package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository persists principals keyed by the unique telegram_id.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertByTelegramID inserts or refreshes the principal for an external
// identity. The conflict target is the telegram_id unique constraint, so
// concurrent first logins for the same identity converge on one row; the
// canonical row is re-read afterwards so generated ids are never guessed.
func (r *UserRepository) UpsertByTelegramID(ctx context.Context, identity domain.TelegramIdentity, now time.Time) (domain.User, error) {
	model := userModel{
		UserID:     uuid.New(),
		TelegramID: identity.TelegramID,
		Name:       identity.Name,
		Username:   identity.Username,
		CreatedAt:  now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":     identity.Name,
			"username": identity.Username,
		}),
	}).Create(&model).Error
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}

	var row userModel
	err = r.db.WithContext(ctx).
		Where("telegram_id = ?", identity.TelegramID).
		Take(&row).Error
	if err != nil {
		return domain.User{}, fmt.Errorf("load upserted user: %w", translateError(err))
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return toDomainUser(row), nil
}
