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

// authorizedSenderRepo implements repositories.AuthorizedSenderRepository
type authorizedSenderRepo struct {
	db *gorm.DB
}

// NewAuthorizedSenderRepository creates a new authorized sender repository
func NewAuthorizedSenderRepository(db *gorm.DB) repositories.AuthorizedSenderRepository {
	return &authorizedSenderRepo{db: db}
}

func (r *authorizedSenderRepo) Get(ctx context.Context, sourceDomain uint32, sender string) (*entities.AuthorizedSender, error) {
	var m models.AuthorizedSender
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("source_domain = ? AND sender = ?", sourceDomain, utils.NormalizeBytes32(sender)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *authorizedSenderRepo) Set(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error {
	m := &models.AuthorizedSender{
		ID:           utils.GenerateUUIDv7(),
		SourceDomain: sourceDomain,
		Sender:       utils.NormalizeBytes32(sender),
		Enabled:      enabled,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_domain"}, {Name: "sender"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(m).Error
}

func (r *authorizedSenderRepo) List(ctx context.Context) ([]*entities.AuthorizedSender, error) {
	var ms []models.AuthorizedSender
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("source_domain, sender").Find(&ms).Error; err != nil {
		return nil, err
	}

	var senders []*entities.AuthorizedSender
	for _, m := range ms {
		model := m
		senders = append(senders, r.toEntity(&model))
	}
	return senders, nil
}

func (r *authorizedSenderRepo) toEntity(m *models.AuthorizedSender) *entities.AuthorizedSender {
	return &entities.AuthorizedSender{
		ID:           m.ID,
		SourceDomain: m.SourceDomain,
		Sender:       m.Sender,
		Enabled:      m.Enabled,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
