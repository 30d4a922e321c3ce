package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/models"
	"stable-route.backend/pkg/utils"
)

// transferRepo implements repositories.TransferRepository
type transferRepo struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) repositories.TransferRepository {
	return &transferRepo{db: db}
}

// Create creates the immutable source-side transfer record
func (r *transferRepo) Create(ctx context.Context, transfer *entities.Transfer) error {
	m := &models.Transfer{
		ID:          transfer.ID,
		TransferID:  transfer.TransferID,
		Caller:      transfer.Caller,
		Protocol:    uint8(transfer.Protocol),
		SourceToken: transfer.SourceToken,
		DestToken:   transfer.DestToken,
		Amount:      transfer.Amount,
		FeeAmount:   transfer.FeeAmount,
		NetAmount:   transfer.NetAmount,
		DestChainID: transfer.DestChainID,
		Recipient:   transfer.Recipient,
		Status:      string(transfer.Status),
	}
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if transfer.SourceTxHash.Valid {
		m.SourceTxHash = &transfer.SourceTxHash.String
	}
	if transfer.MessageNonce.Valid {
		m.MessageNonce = &transfer.MessageNonce.Uint64
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByTransferID gets a transfer by its derived id
func (r *transferRepo) GetByTransferID(ctx context.Context, transferID string) (*entities.Transfer, error) {
	var m models.Transfer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("transfer_id = ?", transferID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets transfers, optionally filtered by caller
func (r *transferRepo) List(ctx context.Context, caller *string, pagination utils.PaginationParams) ([]*entities.Transfer, int64, error) {
	var ms []models.Transfer
	var totalCount int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transfer{})
	if caller != nil {
		query = query.Where("caller = ?", utils.NormalizeAddress(*caller))
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var transfers []*entities.Transfer
	for _, m := range ms {
		model := m
		transfers = append(transfers, r.toEntity(&model))
	}
	return transfers, totalCount, nil
}

// ListByStatus gets transfers in a given status for one protocol, oldest
// first. Used by the attestation poller.
func (r *transferRepo) ListByStatus(ctx context.Context, status entities.TransferStatus, protocol entities.Protocol, limit int) ([]*entities.Transfer, error) {
	var ms []models.Transfer
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND protocol = ?", string(status), uint8(protocol)).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var transfers []*entities.Transfer
	for _, m := range ms {
		model := m
		transfers = append(transfers, r.toEntity(&model))
	}
	return transfers, nil
}

// UpdateStatus advances the derived status column
func (r *transferRepo) UpdateStatus(ctx context.Context, transferID string, status entities.TransferStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transfer{}).
		Where("transfer_id = ?", transferID).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// toEntity converts GORM model to Domain Entity
func (r *transferRepo) toEntity(m *models.Transfer) *entities.Transfer {
	e := &entities.Transfer{
		ID:          m.ID,
		TransferID:  m.TransferID,
		Caller:      m.Caller,
		Protocol:    entities.Protocol(m.Protocol),
		SourceToken: m.SourceToken,
		DestToken:   m.DestToken,
		Amount:      m.Amount,
		FeeAmount:   m.FeeAmount,
		NetAmount:   m.NetAmount,
		DestChainID: m.DestChainID,
		Recipient:   m.Recipient,
		Status:      entities.TransferStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.SourceTxHash != nil {
		e.SourceTxHash = null.StringFrom(*m.SourceTxHash)
	}
	if m.MessageNonce != nil {
		e.MessageNonce = null.Uint64From(*m.MessageNonce)
	}
	return e
}
