package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// protocolContractRepo implements repositories.ProtocolContractRepository
type protocolContractRepo struct {
	db *gorm.DB
}

// NewProtocolContractRepository creates a new protocol contract repository
func NewProtocolContractRepository(db *gorm.DB) repositories.ProtocolContractRepository {
	return &protocolContractRepo{db: db}
}

func (r *protocolContractRepo) GetByProtocol(ctx context.Context, protocol entities.Protocol) (*entities.ProtocolContract, error) {
	var m models.ProtocolContract
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("protocol = ?", uint8(protocol)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *protocolContractRepo) Set(ctx context.Context, protocol entities.Protocol, address string) error {
	m := &models.ProtocolContract{
		ID:       utils.GenerateUUIDv7(),
		Protocol: uint8(protocol),
		Address:  address,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "protocol"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "updated_at"}),
	}).Create(m).Error
}

func (r *protocolContractRepo) List(ctx context.Context) ([]*entities.ProtocolContract, error) {
	var ms []models.ProtocolContract
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("protocol").Find(&ms).Error; err != nil {
		return nil, err
	}

	var contracts []*entities.ProtocolContract
	for _, m := range ms {
		model := m
		contracts = append(contracts, r.toEntity(&model))
	}
	return contracts, nil
}

func (r *protocolContractRepo) toEntity(m *models.ProtocolContract) *entities.ProtocolContract {
	return &entities.ProtocolContract{
		ID:        m.ID,
		Protocol:  entities.Protocol(m.Protocol),
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
