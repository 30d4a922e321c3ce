package repositories

import (
	"context"
	"encoding/json"
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

// transferEventRepo implements repositories.TransferEventRepository
type transferEventRepo struct {
	db *gorm.DB
}

// NewTransferEventRepository creates a new transfer event repository
func NewTransferEventRepository(db *gorm.DB) repositories.TransferEventRepository {
	return &transferEventRepo{db: db}
}

// Create appends an event row. Events are never updated or deleted.
func (r *transferEventRepo) Create(ctx context.Context, event *entities.TransferEvent) error {
	meta := "{}"
	if event.Metadata != nil {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
		meta = string(raw)
	}

	m := &models.TransferEvent{
		ID:        event.ID,
		EventType: string(event.EventType),
		Protocol:  uint8(event.Protocol),
		Token:     event.Token,
		Amount:    event.Amount,
		Recipient: event.Recipient,
		Metadata:  meta,
		CreatedAt: event.CreatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if event.TransferID.Valid {
		m.TransferID = &event.TransferID.String
	}
	if event.SourceDomain.Valid {
		m.SourceDomain = &event.SourceDomain.Uint32
	}
	if event.Sender.Valid {
		m.Sender = &event.Sender.String
	}
	if event.TxHash.Valid {
		m.TxHash = &event.TxHash.String
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByTransferID gets events for a transfer, oldest first
func (r *transferEventRepo) GetByTransferID(ctx context.Context, transferID string) ([]*entities.TransferEvent, error) {
	var ms []models.TransferEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var events []*entities.TransferEvent
	for _, m := range ms {
		model := m
		events = append(events, r.toEntity(&model))
	}
	return events, nil
}

// GetByID gets a single event
func (r *transferEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.TransferEvent, error) {
	var m models.TransferEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// toEntity converts GORM model to Domain Entity
func (r *transferEventRepo) toEntity(m *models.TransferEvent) *entities.TransferEvent {
	e := &entities.TransferEvent{
		ID:        m.ID,
		EventType: entities.TransferEventType(m.EventType),
		Protocol:  entities.Protocol(m.Protocol),
		Token:     m.Token,
		Amount:    m.Amount,
		Recipient: m.Recipient,
		CreatedAt: m.CreatedAt,
	}
	if m.TransferID != nil {
		e.TransferID = null.StringFrom(*m.TransferID)
	}
	if m.SourceDomain != nil {
		e.SourceDomain = null.Uint32From(*m.SourceDomain)
	}
	if m.Sender != nil {
		e.Sender = null.StringFrom(*m.Sender)
	}
	if m.TxHash != nil {
		e.TxHash = null.StringFrom(*m.TxHash)
	}
	if m.Metadata != "" && m.Metadata != "{}" {
		var meta map[string]interface{}
		if err := json.Unmarshal([]byte(m.Metadata), &meta); err == nil {
			e.Metadata = meta
		}
	}
	return e
}
