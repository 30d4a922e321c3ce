package usecases

import (
	"context"
	"fmt"

	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/pkg/logger"
	"stable-route.backend/pkg/utils"
)

// RouteRegistryUsecase handles the admin-facing routing configuration: the
// route table, per-protocol contracts, the inbound sender allow-list and the
// supported token list.
type RouteRegistryUsecase struct {
	routeRepo    repositories.RouteRepository
	contractRepo repositories.ProtocolContractRepository
	senderRepo   repositories.AuthorizedSenderRepository
	tokenRepo    repositories.SupportedTokenRepository
	eventRepo    repositories.TransferEventRepository
	uow          repositories.UnitOfWork
	publisher    EventPublisher
	localChainID uint64
}

// NewRouteRegistryUsecase creates a new route registry usecase
func NewRouteRegistryUsecase(
	routeRepo repositories.RouteRepository,
	contractRepo repositories.ProtocolContractRepository,
	senderRepo repositories.AuthorizedSenderRepository,
	tokenRepo repositories.SupportedTokenRepository,
	eventRepo repositories.TransferEventRepository,
	uow repositories.UnitOfWork,
	publisher EventPublisher,
	localChainID uint64,
) *RouteRegistryUsecase {
	return &RouteRegistryUsecase{
		routeRepo:    routeRepo,
		contractRepo: contractRepo,
		senderRepo:   senderRepo,
		tokenRepo:    tokenRepo,
		eventRepo:    eventRepo,
		uow:          uow,
		publisher:    publisher,
		localChainID: localChainID,
	}
}

// ConfigureRoute writes a route binding. Reconfiguring an existing pair
// overwrites the previous binding; setting protocol NONE disables the route.
func (u *RouteRegistryUsecase) ConfigureRoute(ctx context.Context, input *entities.RouteConfigInput) (*entities.Route, error) {
	if err := u.validateRouteInput(input); err != nil {
		return nil, err
	}

	route := &entities.Route{
		Key:            RouteKeyOf(input.SourceToken, input.SourceChainID, input.DestToken, input.DestChainID),
		SourceToken:    utils.NormalizeAddress(input.SourceToken),
		SourceChainID:  input.SourceChainID,
		DestToken:      utils.NormalizeAddress(input.DestToken),
		DestChainID:    input.DestChainID,
		Protocol:       input.Protocol,
		ProtocolDomain: input.ProtocolDomain,
		BridgeContract: utils.NormalizeAddress(input.BridgeContract),
		PoolID:         input.PoolID,
		SwapPool:       utils.NormalizeAddress(input.SwapPool),
		ExtraData:      input.ExtraData,
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.routeRepo.Upsert(txCtx, route); err != nil {
			return err
		}
		return u.eventRepo.Create(txCtx, &entities.TransferEvent{
			ID:        utils.GenerateUUIDv7(),
			EventType: entities.TransferEventTypeRouteConfigured,
			Protocol:  route.Protocol,
			Token:     route.SourceToken,
			Metadata: map[string]interface{}{
				"key":         route.Key,
				"destToken":   route.DestToken,
				"destChainId": route.DestChainID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, fmt.Sprintf("route configured: %s -> %s via %s", route.SourceToken, route.DestToken, route.Protocol))
	return route, nil
}

// GetRoute resolves the binding for an ordered token pair.
func (u *RouteRegistryUsecase) GetRoute(ctx context.Context, sourceToken string, sourceChainID uint64, destToken string, destChainID uint64) (*entities.Route, error) {
	key := RouteKeyOf(sourceToken, sourceChainID, destToken, destChainID)
	route, err := u.routeRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return route, nil
}

// ListRoutes lists configured routes with optional chain filters.
func (u *RouteRegistryUsecase) ListRoutes(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error) {
	return u.routeRepo.List(ctx, sourceChainID, destChainID, pagination)
}

// SetProtocolContract registers the canonical bridge contract for a protocol
// on the local chain.
func (u *RouteRegistryUsecase) SetProtocolContract(ctx context.Context, protocol entities.Protocol, address string) error {
	if !protocol.Valid() || protocol == entities.ProtocolNone {
		return domainerrors.BadRequest("unknown protocol")
	}
	if !utils.IsHexAddress(address) || utils.IsZeroAddress(address) {
		return domainerrors.BadRequest("invalid contract address")
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.contractRepo.Set(txCtx, protocol, utils.NormalizeAddress(address)); err != nil {
			return err
		}
		return u.eventRepo.Create(txCtx, &entities.TransferEvent{
			ID:        utils.GenerateUUIDv7(),
			EventType: entities.TransferEventTypeProtocolConfigured,
			Protocol:  protocol,
			Metadata:  map[string]interface{}{"address": utils.NormalizeAddress(address)},
		})
	})
	return err
}

// ListProtocolContracts lists registered protocol contracts.
func (u *RouteRegistryUsecase) ListProtocolContracts(ctx context.Context) ([]*entities.ProtocolContract, error) {
	return u.contractRepo.List(ctx)
}

// SetAuthorizedSender grants or revokes a (domain, sender) pair for inbound
// settlement.
func (u *RouteRegistryUsecase) SetAuthorizedSender(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error {
	if sender == "" {
		return domainerrors.BadRequest("sender identity required")
	}
	return u.senderRepo.Set(ctx, sourceDomain, utils.NormalizeBytes32(sender), enabled)
}

// ListAuthorizedSenders lists the inbound allow-list.
func (u *RouteRegistryUsecase) ListAuthorizedSenders(ctx context.Context) ([]*entities.AuthorizedSender, error) {
	return u.senderRepo.List(ctx)
}

// SetSupportedToken flips a token on the settlement allow-list.
func (u *RouteRegistryUsecase) SetSupportedToken(ctx context.Context, token string, enabled bool) error {
	if !utils.IsHexAddress(token) || utils.IsZeroAddress(token) {
		return domainerrors.BadRequest("invalid token address")
	}
	return u.tokenRepo.Set(ctx, token, enabled)
}

// ListSupportedTokens lists the settlement token allow-list.
func (u *RouteRegistryUsecase) ListSupportedTokens(ctx context.Context) ([]*entities.SupportedToken, error) {
	return u.tokenRepo.List(ctx)
}

func (u *RouteRegistryUsecase) validateRouteInput(input *entities.RouteConfigInput) error {
	if !utils.IsHexAddress(input.SourceToken) || utils.IsZeroAddress(input.SourceToken) {
		return domainerrors.BadRequest("invalid source token")
	}
	if !utils.IsHexAddress(input.DestToken) || utils.IsZeroAddress(input.DestToken) {
		return domainerrors.BadRequest("invalid dest token")
	}
	if input.SourceChainID == 0 || input.DestChainID == 0 {
		return domainerrors.BadRequest("chain ids required")
	}
	if !input.Protocol.Valid() {
		return domainerrors.BadRequest("unknown protocol")
	}

	sameChain := input.SourceChainID == input.DestChainID
	switch input.Protocol {
	case entities.ProtocolNone:
		// Disabled route, or a same-chain swap pair served by the pool.
		if sameChain && utils.IsZeroAddress(input.SwapPool) {
			return domainerrors.BadRequest("same-chain route requires a swap pool")
		}
	case entities.ProtocolCCTP, entities.ProtocolLayerZero:
		if !utils.IsHexAddress(input.BridgeContract) || utils.IsZeroAddress(input.BridgeContract) {
			return domainerrors.BadRequest("bridge contract required")
		}
	case entities.ProtocolCCTPHooks:
		if !utils.IsHexAddress(input.BridgeContract) || utils.IsZeroAddress(input.BridgeContract) {
			return domainerrors.BadRequest("bridge contract required")
		}
		// The hook receiver rides in the swapPool slot for hook routes.
		if !utils.IsHexAddress(input.SwapPool) || utils.IsZeroAddress(input.SwapPool) {
			return domainerrors.BadRequest("hook route requires a destination receiver")
		}
	case entities.ProtocolStargate:
		if !utils.IsHexAddress(input.BridgeContract) || utils.IsZeroAddress(input.BridgeContract) {
			return domainerrors.BadRequest("bridge contract required")
		}
		if input.PoolID == 0 {
			return domainerrors.BadRequest("stargate route requires a pool id")
		}
	}

	if input.Protocol != entities.ProtocolNone && sameChain {
		return domainerrors.BadRequest("cross-chain protocol on a same-chain pair")
	}
	return nil
}
