package usecases

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"sync/atomic"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/bridges"
	"stable-route.backend/pkg/logger"
	"stable-route.backend/pkg/utils"
)

// DispatcherUsecase is the single user entry point for outbound transfers.
// It resolves the route, applies the fee split, pulls the caller's funds into
// custody and hands the net amount to the protocol adapter.
type DispatcherUsecase struct {
	routeRepo    repositories.RouteRepository
	feeRepo      repositories.FeeRepository
	transferRepo repositories.TransferRepository
	eventRepo    repositories.TransferEventRepository
	nonceRepo    repositories.NonceRepository
	uow          repositories.UnitOfWork
	custody      TokenCustody
	swapper      SwapAdapter
	adapters     AdapterRegistry
	publisher    EventPublisher
	localChainID uint64
	// collector is the identity fees accrue under. Crediting is refused
	// when it is not on the collector allow-list.
	collector string

	paused atomic.Bool
}

// NewDispatcherUsecase creates a new dispatcher usecase
func NewDispatcherUsecase(
	routeRepo repositories.RouteRepository,
	feeRepo repositories.FeeRepository,
	transferRepo repositories.TransferRepository,
	eventRepo repositories.TransferEventRepository,
	nonceRepo repositories.NonceRepository,
	uow repositories.UnitOfWork,
	custody TokenCustody,
	swapper SwapAdapter,
	adapters AdapterRegistry,
	publisher EventPublisher,
	localChainID uint64,
	feeCollector string,
) *DispatcherUsecase {
	return &DispatcherUsecase{
		routeRepo:    routeRepo,
		feeRepo:      feeRepo,
		transferRepo: transferRepo,
		eventRepo:    eventRepo,
		nonceRepo:    nonceRepo,
		uow:          uow,
		custody:      custody,
		swapper:      swapper,
		adapters:     adapters,
		publisher:    publisher,
		localChainID: localChainID,
		collector:    utils.NormalizeAddress(feeCollector),
	}
}

// Pause stops accepting new transfers. In-flight messages on destination
// chains are unaffected.
func (u *DispatcherUsecase) Pause() { u.paused.Store(true) }

// Resume re-enables transfers.
func (u *DispatcherUsecase) Resume() { u.paused.Store(false) }

// Paused reports the current switch state.
func (u *DispatcherUsecase) Paused() bool { return u.paused.Load() }

// Transfer moves tokens along a configured route, delivering the bridged
// asset as-is on the destination.
func (u *DispatcherUsecase) Transfer(ctx context.Context, caller string, input *entities.TransferInput) (*entities.TransferResponse, error) {
	return u.dispatch(ctx, caller, input, nil)
}

// TransferWithSwap additionally requests a destination-side conversion into
// the route's dest token, bounded by minAmountOut.
func (u *DispatcherUsecase) TransferWithSwap(ctx context.Context, caller string, input *entities.TransferWithSwapInput) (*entities.TransferResponse, error) {
	minOut, ok := new(big.Int).SetString(input.MinAmountOut, 10)
	if !ok || minOut.Sign() < 0 {
		return nil, domainerrors.BadRequest("invalid minAmountOut")
	}
	return u.dispatch(ctx, caller, &input.TransferInput, minOut)
}

func (u *DispatcherUsecase) dispatch(ctx context.Context, caller string, input *entities.TransferInput, minAmountOut *big.Int) (*entities.TransferResponse, error) {
	if u.paused.Load() {
		return nil, domainerrors.NewAppError(http.StatusServiceUnavailable, "transfers are paused", domainerrors.ErrTransfersPaused)
	}

	amount, err := u.validateInput(caller, input)
	if err != nil {
		return nil, err
	}
	caller = utils.NormalizeAddress(caller)

	sameChain := input.DestChainID == u.localChainID

	key := RouteKeyOf(input.SourceToken, u.localChainID, input.DestToken, input.DestChainID)
	route, err := u.routeRepo.GetByKey(ctx, key)
	if err != nil {
		if sameChain {
			return nil, domainerrors.BadRequest("no swap pool for same-chain pair")
		}
		return nil, domainerrors.ConfigurationError("no route for token pair")
	}

	if !sameChain && !route.Configured() {
		return nil, domainerrors.ConfigurationError("route disabled")
	}
	if sameChain && utils.IsZeroAddress(route.SwapPool) {
		// Same-chain conversion needs a pool; asking for one that does not
		// exist is a caller mistake, not a route misconfiguration.
		return nil, domainerrors.BadRequest("no swap pool for same-chain pair")
	}
	if minAmountOut != nil && !sameChain {
		switch route.Protocol {
		case entities.ProtocolCCTPHooks, entities.ProtocolLayerZero:
		default:
			return nil, domainerrors.BadRequest("destination swap not supported on this route")
		}
	}

	settings, err := u.feeRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	fee := CalculateFee(amount, settings.BasisPoints)
	net := new(big.Int).Sub(amount, fee)
	if net.Sign() <= 0 {
		return nil, domainerrors.BadRequest("amount below fee floor")
	}

	// Fees only accrue under an allow-listed collector. Checked before any
	// funds move so revoking the collector halts transfers cleanly.
	if fee.Sign() > 0 {
		authorized, err := u.feeRepo.IsCollector(ctx, u.collector)
		if err != nil {
			return nil, err
		}
		if !authorized {
			return nil, domainerrors.Forbidden("fee collector not authorized")
		}
	}

	// The caller must have approved custody before calling in.
	allowance, err := u.custody.Allowance(ctx, input.SourceToken, caller)
	if err != nil {
		return nil, domainerrors.ExternalCallFailure(err)
	}
	if allowance.Cmp(amount) < 0 {
		return nil, domainerrors.InsufficientFunds("custody allowance below transfer amount")
	}
	if _, err := u.custody.Pull(ctx, input.SourceToken, caller, amount); err != nil {
		return nil, domainerrors.ExternalCallFailure(err)
	}

	var (
		txHash   string
		protocol = route.Protocol
	)
	if sameChain {
		txHash, err = u.sendSameChain(ctx, route, net, minAmountOut, input.Recipient)
	} else {
		txHash, err = u.sendCrossChain(ctx, route, net, minAmountOut, input)
	}
	if err != nil {
		// Custody already holds the pulled amount; hand it back so a failed
		// bridge or swap leg never strands the caller's funds.
		if _, relErr := u.custody.Release(ctx, input.SourceToken, caller, amount); relErr != nil {
			logger.Error(ctx, "refund after failed dispatch did not land",
				zap.String("caller", caller),
				zap.String("token", input.SourceToken),
				zap.String("amount", amount.String()),
				zap.Error(relErr))
		}
		return nil, err
	}

	var (
		transferID string
		status     = entities.TransferStatusInitiated
	)
	if sameChain {
		// Same-chain delivery completes synchronously.
		status = entities.TransferStatusSettled
		protocol = entities.ProtocolNone
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		nonce, err := u.nonceRepo.Next(txCtx, caller)
		if err != nil {
			return err
		}
		transferID = DeriveTransferID(caller, nonce)

		if err := u.feeRepo.Credit(txCtx, input.SourceToken, fee); err != nil {
			return err
		}

		transfer := &entities.Transfer{
			ID:           utils.GenerateUUIDv7(),
			TransferID:   transferID,
			Caller:       caller,
			Protocol:     protocol,
			SourceToken:  utils.NormalizeAddress(input.SourceToken),
			DestToken:    utils.NormalizeAddress(input.DestToken),
			Amount:       amount.String(),
			FeeAmount:    fee.String(),
			NetAmount:    net.String(),
			DestChainID:  input.DestChainID,
			Recipient:    utils.NormalizeAddress(input.Recipient),
			Status:       status,
			SourceTxHash: null.StringFrom(txHash),
			MessageNonce: null.Uint64From(nonce),
		}
		if err := u.transferRepo.Create(txCtx, transfer); err != nil {
			return err
		}

		return u.eventRepo.Create(txCtx, &entities.TransferEvent{
			ID:         utils.GenerateUUIDv7(),
			TransferID: null.StringFrom(transferID),
			EventType:  entities.TransferEventTypeInitiated,
			Protocol:   protocol,
			Token:      transfer.SourceToken,
			Amount:     net.String(),
			Recipient:  transfer.Recipient,
			TxHash:     null.StringFrom(txHash),
			Metadata:   map[string]interface{}{"destChainId": input.DestChainID, "fee": fee.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, transferID, protocol, txHash)

	return &entities.TransferResponse{
		TransferID: transferID,
		Protocol:   protocol.String(),
		FeeAmount:  fee.String(),
		NetAmount:  net.String(),
		TxHash:     txHash,
		SameChain:  sameChain,
	}, nil
}

// sendSameChain converts through the local pool and delivers directly.
func (u *DispatcherUsecase) sendSameChain(ctx context.Context, route *entities.Route, net, minAmountOut *big.Int, recipient string) (string, error) {
	if minAmountOut == nil {
		minAmountOut = big.NewInt(0)
	}
	_, txHash, err := u.swapper.Swap(ctx, route.SwapPool, route.SourceToken, route.DestToken, net, minAmountOut, recipient)
	return txHash, err
}

func (u *DispatcherUsecase) sendCrossChain(ctx context.Context, route *entities.Route, net, minAmountOut *big.Int, input *entities.TransferInput) (string, error) {
	adapter, ok := u.adapters[route.Protocol]
	if !ok {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedProtocol, route.Protocol)
	}

	req := &entities.BridgeRequest{
		Route:     route,
		Token:     route.SourceToken,
		Amount:    net,
		Recipient: utils.NormalizeAddress(input.Recipient),
	}

	// Hook and compose protocols carry the delivery instruction in-band.
	if route.Protocol == entities.ProtocolCCTPHooks || route.Protocol == entities.ProtocolLayerZero {
		min := minAmountOut
		if min == nil {
			min = big.NewInt(0)
		}
		payload, err := bridges.EncodeHookPayload(&entities.HookPayload{
			Recipient:     req.Recipient,
			BridgedToken:  route.SourceToken,
			BridgedAmount: net,
			TargetToken:   route.DestToken,
			MinAmountOut:  min,
		})
		if err != nil {
			return "", err
		}
		req.HookPayload = payload
	}

	txHash, err := adapter.Send(ctx, req)
	if err != nil {
		return "", domainerrors.ExternalCallFailure(err)
	}
	return txHash, nil
}

func (u *DispatcherUsecase) validateInput(caller string, input *entities.TransferInput) (*big.Int, error) {
	if !utils.IsHexAddress(caller) || utils.IsZeroAddress(caller) {
		return nil, domainerrors.Unauthorized("caller address required")
	}
	if !utils.IsHexAddress(input.SourceToken) || utils.IsZeroAddress(input.SourceToken) {
		return nil, domainerrors.BadRequest("invalid source token")
	}
	if !utils.IsHexAddress(input.DestToken) || utils.IsZeroAddress(input.DestToken) {
		return nil, domainerrors.BadRequest("invalid dest token")
	}
	if !utils.IsHexAddress(input.Recipient) || utils.IsZeroAddress(input.Recipient) {
		return nil, domainerrors.BadRequest("invalid recipient")
	}
	if input.DestChainID == 0 {
		return nil, domainerrors.BadRequest("dest chain id required")
	}
	amount, ok := new(big.Int).SetString(input.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, domainerrors.BadRequest("invalid amount")
	}
	return amount, nil
}

// GetTransfer returns a transfer record by public id.
func (u *DispatcherUsecase) GetTransfer(ctx context.Context, transferID string) (*entities.Transfer, error) {
	return u.transferRepo.GetByTransferID(ctx, transferID)
}

// ListTransfers lists transfers, optionally scoped to one caller.
func (u *DispatcherUsecase) ListTransfers(ctx context.Context, caller *string, pagination utils.PaginationParams) ([]*entities.Transfer, int64, error) {
	return u.transferRepo.List(ctx, caller, pagination)
}

// GetTransferEvents returns the durable event history for a transfer.
func (u *DispatcherUsecase) GetTransferEvents(ctx context.Context, transferID string) ([]*entities.TransferEvent, error) {
	return u.eventRepo.GetByTransferID(ctx, transferID)
}

func (u *DispatcherUsecase) publish(ctx context.Context, transferID string, protocol entities.Protocol, txHash string) {
	if u.publisher == nil {
		return
	}
	event := &entities.TransferEvent{
		TransferID: null.StringFrom(transferID),
		EventType:  entities.TransferEventTypeInitiated,
		Protocol:   protocol,
		TxHash:     null.StringFrom(txHash),
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "event publish failed", zap.String("transferId", transferID), zap.Error(err))
	}
}
