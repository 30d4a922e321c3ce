package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// supportedTokenRepo implements repositories.SupportedTokenRepository
type supportedTokenRepo struct {
	db *gorm.DB
}

// NewSupportedTokenRepository creates a new supported token repository
func NewSupportedTokenRepository(db *gorm.DB) repositories.SupportedTokenRepository {
	return &supportedTokenRepo{db: db}
}

// IsSupported reports whether the token is on the allow-list and enabled.
// An unknown token is simply not supported, never an error.
func (r *supportedTokenRepo) IsSupported(ctx context.Context, token string) (bool, error) {
	var m models.SupportedToken
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("address = ?", utils.NormalizeAddress(token)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Enabled, nil
}

func (r *supportedTokenRepo) Set(ctx context.Context, token string, enabled bool) error {
	m := &models.SupportedToken{
		ID:      utils.GenerateUUIDv7(),
		Address: utils.NormalizeAddress(token),
		Enabled: enabled,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(m).Error
}

func (r *supportedTokenRepo) List(ctx context.Context) ([]*entities.SupportedToken, error) {
	var ms []models.SupportedToken
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("address").Find(&ms).Error; err != nil {
		return nil, err
	}

	var tokens []*entities.SupportedToken
	for _, m := range ms {
		tokens = append(tokens, &entities.SupportedToken{
			ID:        m.ID,
			Address:   m.Address,
			Enabled:   m.Enabled,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return tokens, nil
}
