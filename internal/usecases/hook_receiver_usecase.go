package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/internal/infrastructure/bridges"
	"stable-route.backend/pkg/logger"
	"stable-route.backend/pkg/utils"
)

// SettlementResult is returned after an inbound message settles.
type SettlementResult struct {
	Recipient string `json:"recipient"`
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	Swapped   bool   `json:"swapped"`
	TxHash    string `json:"txHash"`
}

// HookReceiverUsecase settles finalized inbound messages on the local chain.
// Only the configured transport may call in, and only messages from
// allow-listed (domain, sender) pairs are accepted; bridge-level attestation
// alone is not sufficient.
type HookReceiverUsecase struct {
	senderRepo     repositories.AuthorizedSenderRepository
	tokenRepo      repositories.SupportedTokenRepository
	routeRepo      repositories.RouteRepository
	eventRepo      repositories.TransferEventRepository
	nonceRepo      repositories.InboundNonceRepository
	uow            repositories.UnitOfWork
	custody        TokenCustody
	swapper        SwapAdapter
	publisher      EventPublisher
	localTransport string
	localChainID   uint64
}

// NewHookReceiverUsecase creates a new hook receiver usecase
func NewHookReceiverUsecase(
	senderRepo repositories.AuthorizedSenderRepository,
	tokenRepo repositories.SupportedTokenRepository,
	routeRepo repositories.RouteRepository,
	eventRepo repositories.TransferEventRepository,
	nonceRepo repositories.InboundNonceRepository,
	uow repositories.UnitOfWork,
	custody TokenCustody,
	swapper SwapAdapter,
	publisher EventPublisher,
	localTransport string,
	localChainID uint64,
) *HookReceiverUsecase {
	return &HookReceiverUsecase{
		senderRepo:     senderRepo,
		tokenRepo:      tokenRepo,
		routeRepo:      routeRepo,
		eventRepo:      eventRepo,
		nonceRepo:      nonceRepo,
		uow:            uow,
		custody:        custody,
		swapper:        swapper,
		publisher:      publisher,
		localTransport: utils.NormalizeAddress(localTransport),
		localChainID:   localChainID,
	}
}

// HandleInbound settles one finalized message. transport is the caller
// identity established by settlement auth, never taken from the body.
func (u *HookReceiverUsecase) HandleInbound(ctx context.Context, transport string, msg *entities.InboundMessage) (*SettlementResult, error) {
	if utils.NormalizeAddress(transport) != u.localTransport {
		return nil, domainerrors.Forbidden("caller is not the local transport")
	}

	sender, err := u.senderRepo.Get(ctx, msg.SourceDomain, utils.NormalizeBytes32(msg.Sender))
	if err != nil || !sender.Enabled {
		return nil, domainerrors.Forbidden("sender not authorized for domain")
	}

	raw := common.FromHex(strings.TrimSpace(msg.Payload))
	if len(raw) == 0 {
		return nil, domainerrors.BadRequest("empty payload")
	}
	payload, err := bridges.DecodeHookPayload(raw)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}
	if payload.BridgedAmount.Sign() <= 0 {
		return nil, domainerrors.BadRequest("non-positive bridged amount")
	}
	if utils.IsZeroAddress(payload.Recipient) {
		return nil, domainerrors.BadRequest("zero recipient")
	}

	if msg.MessageNonce == 0 {
		return nil, domainerrors.BadRequest("missing message nonce")
	}
	consumed, err := u.nonceRepo.Consumed(ctx, msg.SourceDomain, msg.MessageNonce)
	if err != nil {
		return nil, err
	}
	if consumed {
		return nil, domainerrors.NewAppError(http.StatusConflict, "message already settled", domainerrors.ErrAlreadyExists)
	}

	supported, err := u.tokenRepo.IsSupported(ctx, payload.BridgedToken)
	if err != nil {
		return nil, err
	}
	if !supported {
		return nil, domainerrors.NewAppError(http.StatusUnprocessableEntity, "bridged token not supported", domainerrors.ErrUnsupportedToken)
	}
	if wantsSwap(payload) {
		supported, err = u.tokenRepo.IsSupported(ctx, payload.TargetToken)
		if err != nil {
			return nil, err
		}
		if !supported {
			return nil, domainerrors.NewAppError(http.StatusUnprocessableEntity, "target token not supported", domainerrors.ErrUnsupportedToken)
		}
	}

	// The bridge must already have minted the funds to custody.
	balance, err := u.custody.Balance(ctx, payload.BridgedToken, u.custody.Address())
	if err != nil {
		return nil, domainerrors.ExternalCallFailure(err)
	}
	if balance.Cmp(payload.BridgedAmount) < 0 {
		return nil, domainerrors.InsufficientFunds("bridged funds not in custody")
	}

	result, err := u.settle(ctx, payload)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.nonceRepo.Consume(txCtx, msg.SourceDomain, msg.MessageNonce); err != nil {
			return err
		}
		return u.eventRepo.Create(txCtx, &entities.TransferEvent{
			ID:           utils.GenerateUUIDv7(),
			EventType:    entities.TransferEventTypeInboundSettled,
			Token:        result.Token,
			Amount:       result.Amount,
			Recipient:    result.Recipient,
			SourceDomain: null.Uint32From(msg.SourceDomain),
			Sender:       null.StringFrom(utils.NormalizeBytes32(msg.Sender)),
			TxHash:       null.StringFrom(result.TxHash),
			Metadata: map[string]interface{}{
				"messageNonce": msg.MessageNonce,
				"swapped":      result.Swapped,
			},
		})
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.NewAppError(http.StatusConflict, "message already settled", domainerrors.ErrAlreadyExists)
		}
		return nil, err
	}

	if u.publisher != nil {
		event := &entities.TransferEvent{
			EventType:    entities.TransferEventTypeInboundSettled,
			SourceDomain: null.Uint32From(msg.SourceDomain),
			TxHash:       null.StringFrom(result.TxHash),
		}
		if pubErr := u.publisher.Publish(ctx, event); pubErr != nil {
			logger.Warn(ctx, "event publish failed", zap.Error(pubErr))
		}
	}

	logger.Info(ctx, "inbound message settled",
		zap.Uint32("sourceDomain", msg.SourceDomain),
		zap.String("recipient", result.Recipient),
		zap.Bool("swapped", result.Swapped))
	return result, nil
}

// wantsSwap reports whether the payload asks for delivery in a token other
// than the bridged one.
func wantsSwap(payload *entities.HookPayload) bool {
	return !utils.IsZeroAddress(payload.TargetToken) &&
		utils.NormalizeAddress(payload.TargetToken) != utils.NormalizeAddress(payload.BridgedToken)
}

// settle delivers directly when no conversion is requested, otherwise swaps
// through the local pool. A pool quoting below the payload's minimum fails
// the whole settlement; there is no silent fallback to the bridged token.
func (u *HookReceiverUsecase) settle(ctx context.Context, payload *entities.HookPayload) (*SettlementResult, error) {
	if !wantsSwap(payload) {
		txHash, err := u.custody.Release(ctx, payload.BridgedToken, payload.Recipient, payload.BridgedAmount)
		if err != nil {
			return nil, domainerrors.ExternalCallFailure(err)
		}
		return &SettlementResult{
			Recipient: payload.Recipient,
			Token:     payload.BridgedToken,
			Amount:    payload.BridgedAmount.String(),
			TxHash:    txHash,
		}, nil
	}

	key := RouteKeyOf(payload.BridgedToken, u.localChainID, payload.TargetToken, u.localChainID)
	route, err := u.routeRepo.GetByKey(ctx, key)
	if err != nil || utils.IsZeroAddress(route.SwapPool) {
		return nil, domainerrors.ConfigurationError(
			fmt.Sprintf("no local swap pool for %s -> %s", payload.BridgedToken, payload.TargetToken))
	}

	amountOut, txHash, err := u.swapper.Swap(ctx, route.SwapPool,
		payload.BridgedToken, payload.TargetToken,
		payload.BridgedAmount, payload.MinAmountOut, payload.Recipient)
	if err != nil {
		return nil, err
	}

	return &SettlementResult{
		Recipient: payload.Recipient,
		Token:     payload.TargetToken,
		Amount:    amountOut.String(),
		Swapped:   true,
		TxHash:    txHash,
	}, nil
}
