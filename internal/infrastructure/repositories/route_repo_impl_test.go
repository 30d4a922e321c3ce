package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/pkg/utils"
)

func sampleRoute(key string, sourceChain, destChain uint64) *entities.Route {
	return &entities.Route{
		Key:            key,
		SourceToken:    "0x1111111111111111111111111111111111111111",
		SourceChainID:  sourceChain,
		DestToken:      "0x2222222222222222222222222222222222222222",
		DestChainID:    destChain,
		Protocol:       entities.ProtocolCCTP,
		ProtocolDomain: 7,
		BridgeContract: "0x3333333333333333333333333333333333333333",
	}
}

func TestRouteRepo_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	createRouteTables(t, db)
	repo := NewRouteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleRoute("0xabc", 1, 137)))

	got, err := repo.GetByKey(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, entities.ProtocolCCTP, got.Protocol)
	require.Equal(t, uint32(7), got.ProtocolDomain)

	// Reconfiguring the same key overwrites, it never duplicates.
	updated := sampleRoute("0xabc", 1, 137)
	updated.Protocol = entities.ProtocolStargate
	updated.PoolID = 2
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err = repo.GetByKey(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, entities.ProtocolStargate, got.Protocol)
	require.Equal(t, uint32(2), got.PoolID)

	routes, total, err := repo.List(ctx, nil, nil, utils.PaginationParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, routes, 1)
}

func TestRouteRepo_GetMissing(t *testing.T) {
	db := newTestDB(t)
	createRouteTables(t, db)
	repo := NewRouteRepository(db)

	_, err := repo.GetByKey(context.Background(), "0xmissing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRouteRepo_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createRouteTables(t, db)
	repo := NewRouteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleRoute("0xaaa", 1, 137)))
	require.NoError(t, repo.Upsert(ctx, sampleRoute("0xbbb", 1, 42161)))
	require.NoError(t, repo.Upsert(ctx, sampleRoute("0xccc", 8453, 137)))

	source := uint64(1)
	routes, total, err := repo.List(ctx, &source, nil, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, routes, 2)

	dest := uint64(137)
	routes, total, err = repo.List(ctx, &source, &dest, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "0xaaa", routes[0].Key)
}

func TestProtocolContractRepo_SetAndGet(t *testing.T) {
	db := newTestDB(t)
	createRouteTables(t, db)
	repo := NewProtocolContractRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, entities.ProtocolCCTP, "0x4444444444444444444444444444444444444444"))
	require.NoError(t, repo.Set(ctx, entities.ProtocolCCTP, "0x5555555555555555555555555555555555555555"))

	got, err := repo.GetByProtocol(ctx, entities.ProtocolCCTP)
	require.NoError(t, err)
	require.Equal(t, "0x5555555555555555555555555555555555555555", got.Address)

	_, err = repo.GetByProtocol(ctx, entities.ProtocolLayerZero)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	contracts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
}
