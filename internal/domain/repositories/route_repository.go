package repositories

import (
	"context"

	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/pkg/utils"
)

// RouteRepository persists the route table. Keys are unique; configuring an
// existing key overwrites it (last write wins).
type RouteRepository interface {
	GetByKey(ctx context.Context, key string) (*entities.Route, error)
	Upsert(ctx context.Context, route *entities.Route) error
	List(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error)
}
