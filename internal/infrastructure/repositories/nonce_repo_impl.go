package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// nonceRepo implements repositories.NonceRepository
type nonceRepo struct {
	db *gorm.DB
}

// NewNonceRepository creates a new nonce repository
func NewNonceRepository(db *gorm.DB) repositories.NonceRepository {
	return &nonceRepo{db: db}
}

// Next returns the caller's next nonce. The row is locked for the increment
// so concurrent transfers from the same caller get distinct values.
func (r *nonceRepo) Next(ctx context.Context, caller string) (uint64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	addr := utils.NormalizeAddress(caller)

	var m models.CallerNonce
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("caller = ?", addr).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.CallerNonce{Caller: addr, Nonce: 0}
		if err := db.Create(&m).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	next := m.Nonce + 1
	if err := db.Model(&models.CallerNonce{}).
		Where("caller = ?", addr).
		Update("nonce", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
