package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// inboundNonceRepo implements repositories.InboundNonceRepository
type inboundNonceRepo struct {
	db *gorm.DB
}

// NewInboundNonceRepository creates a new inbound nonce repository
func NewInboundNonceRepository(db *gorm.DB) repositories.InboundNonceRepository {
	return &inboundNonceRepo{db: db}
}

// Consume records the pair once. A second call with the same pair hits the
// unique index, inserts nothing and returns ErrAlreadyExists, so the caller
// can rely on exactly-once consumption even under concurrent retries.
func (r *inboundNonceRepo) Consume(ctx context.Context, sourceDomain uint32, nonce uint64) error {
	m := &models.ConsumedNonce{
		ID:           utils.GenerateUUIDv7(),
		SourceDomain: sourceDomain,
		Nonce:        nonce,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_domain"}, {Name: "nonce"}},
		DoNothing: true,
	}).Create(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyExists
	}
	return nil
}

func (r *inboundNonceRepo) Consumed(ctx context.Context, sourceDomain uint32, nonce uint64) (bool, error) {
	var m models.ConsumedNonce
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("source_domain = ? AND nonce = ?", sourceDomain, nonce).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
