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

// routeRepo implements repositories.RouteRepository
type routeRepo struct {
	db *gorm.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *gorm.DB) repositories.RouteRepository {
	return &routeRepo{db: db}
}

// GetByKey gets a route by its derived key
func (r *routeRepo) GetByKey(ctx context.Context, key string) (*entities.Route, error) {
	var m models.Route
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Upsert writes the route, overwriting any previous binding for the key.
func (r *routeRepo) Upsert(ctx context.Context, route *entities.Route) error {
	m := &models.Route{
		ID:             utils.GenerateUUIDv7(),
		Key:            route.Key,
		SourceToken:    route.SourceToken,
		SourceChainID:  route.SourceChainID,
		DestToken:      route.DestToken,
		DestChainID:    route.DestChainID,
		Protocol:       uint8(route.Protocol),
		ProtocolDomain: route.ProtocolDomain,
		BridgeContract: route.BridgeContract,
		PoolID:         route.PoolID,
		SwapPool:       route.SwapPool,
		ExtraData:      route.ExtraData,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source_token", "source_chain_id", "dest_token", "dest_chain_id",
			"protocol", "protocol_domain", "bridge_contract", "pool_id",
			"swap_pool", "extra_data", "updated_at",
		}),
	}).Create(m).Error
}

// List gets routes with optional chain filters
func (r *routeRepo) List(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error) {
	var ms []models.Route
	var totalCount int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Route{})

	if sourceChainID != nil {
		query = query.Where("source_chain_id = ?", *sourceChainID)
	}
	if destChainID != nil {
		query = query.Where("dest_chain_id = ?", *destChainID)
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

	var routes []*entities.Route
	for _, m := range ms {
		model := m
		routes = append(routes, r.toEntity(&model))
	}
	return routes, totalCount, nil
}

// toEntity converts GORM model to Domain Entity
func (r *routeRepo) toEntity(m *models.Route) *entities.Route {
	return &entities.Route{
		ID:             m.ID,
		Key:            m.Key,
		SourceToken:    m.SourceToken,
		SourceChainID:  m.SourceChainID,
		DestToken:      m.DestToken,
		DestChainID:    m.DestChainID,
		Protocol:       entities.Protocol(m.Protocol),
		ProtocolDomain: m.ProtocolDomain,
		BridgeContract: m.BridgeContract,
		PoolID:         m.PoolID,
		SwapPool:       m.SwapPool,
		ExtraData:      m.ExtraData,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
