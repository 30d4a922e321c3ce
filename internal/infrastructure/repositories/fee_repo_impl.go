package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// feeRepo implements repositories.FeeRepository
type feeRepo struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) repositories.FeeRepository {
	return &feeRepo{db: db}
}

// GetSettings returns the live fee rate, creating the default row on first
// read.
func (r *feeRepo) GetSettings(ctx context.Context) (*entities.FeeSettings, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.FeeSetting
	if err := db.First(&m).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		m = models.FeeSetting{ID: utils.GenerateUUIDv7(), BasisPoints: 10}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
	}
	return &entities.FeeSettings{ID: m.ID, BasisPoints: m.BasisPoints, UpdatedAt: m.UpdatedAt}, nil
}

func (r *feeRepo) UpdateSettings(ctx context.Context, basisPoints uint32) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.FeeSetting{}).Where("1 = 1").Update("basis_points", basisPoints)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return db.Create(&models.FeeSetting{ID: utils.GenerateUUIDv7(), BasisPoints: basisPoints}).Error
	}
	return nil
}

func (r *feeRepo) IsCollector(ctx context.Context, address string) (bool, error) {
	var m models.FeeCollector
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("address = ?", utils.NormalizeAddress(address)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Enabled, nil
}

func (r *feeRepo) SetCollector(ctx context.Context, address string, enabled bool) error {
	m := &models.FeeCollector{
		ID:      utils.GenerateUUIDv7(),
		Address: utils.NormalizeAddress(address),
		Enabled: enabled,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(m).Error
}

func (r *feeRepo) ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error) {
	var ms []models.FeeCollector
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("address").Find(&ms).Error; err != nil {
		return nil, err
	}

	var collectors []*entities.FeeCollector
	for _, m := range ms {
		collectors = append(collectors, &entities.FeeCollector{
			ID:        m.ID,
			Address:   m.Address,
			Enabled:   m.Enabled,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return collectors, nil
}

// Credit adds amount to the token's ledger row. The row is locked for the
// read-modify-write so concurrent credits cannot lose updates.
func (r *feeRepo) Credit(ctx context.Context, token string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}
	if amount.Sign() == 0 {
		return nil
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	addr := utils.NormalizeAddress(token)

	var m models.FeeBalance
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ?", addr).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.FeeBalance{
			ID:     utils.GenerateUUIDv7(),
			Token:  addr,
			Amount: amount.String(),
		}).Error
	}
	if err != nil {
		return err
	}

	current, ok := new(big.Int).SetString(m.Amount, 10)
	if !ok {
		return fmt.Errorf("corrupt fee balance for %s: %q", addr, m.Amount)
	}
	next := new(big.Int).Add(current, amount)

	return db.Model(&models.FeeBalance{}).
		Where("id = ?", m.ID).
		Update("amount", next.String()).Error
}

func (r *feeRepo) GetBalance(ctx context.Context, token string) (*big.Int, error) {
	var m models.FeeBalance
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("token = ?", utils.NormalizeAddress(token)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	balance, ok := new(big.Int).SetString(m.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("corrupt fee balance for %s: %q", m.Token, m.Amount)
	}
	return balance, nil
}

func (r *feeRepo) ListBalances(ctx context.Context) ([]*entities.FeeBalance, error) {
	var ms []models.FeeBalance
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("token").Find(&ms).Error; err != nil {
		return nil, err
	}

	var balances []*entities.FeeBalance
	for _, m := range ms {
		balances = append(balances, &entities.FeeBalance{
			ID:        m.ID,
			Token:     m.Token,
			Amount:    m.Amount,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return balances, nil
}
