package usecases

import (
	"context"
	"math/big"

	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/domain/repositories"
	"stable-route.backend/pkg/utils"
)

// FeeUsecase handles fee rate administration, the collector allow-list, the
// accrued ledger and read-only quotes.
type FeeUsecase struct {
	feeRepo      repositories.FeeRepository
	routeRepo    repositories.RouteRepository
	adapters     AdapterRegistry
	localChainID uint64
}

// NewFeeUsecase creates a new fee usecase
func NewFeeUsecase(feeRepo repositories.FeeRepository, routeRepo repositories.RouteRepository, adapters AdapterRegistry, localChainID uint64) *FeeUsecase {
	return &FeeUsecase{
		feeRepo:      feeRepo,
		routeRepo:    routeRepo,
		adapters:     adapters,
		localChainID: localChainID,
	}
}

// GetSettings returns the live fee rate.
func (u *FeeUsecase) GetSettings(ctx context.Context) (*entities.FeeSettings, error) {
	return u.feeRepo.GetSettings(ctx)
}

// UpdateBasisPoints sets the fee rate. Capped so a misconfigured admin call
// cannot confiscate transfers.
func (u *FeeUsecase) UpdateBasisPoints(ctx context.Context, basisPoints uint32) error {
	if basisPoints > MaxFeeBasisPoints {
		return domainerrors.BadRequest("fee rate above maximum")
	}
	return u.feeRepo.UpdateSettings(ctx, basisPoints)
}

// SetCollector grants or revokes fee collection rights for an address.
func (u *FeeUsecase) SetCollector(ctx context.Context, address string, enabled bool) error {
	if !utils.IsHexAddress(address) || utils.IsZeroAddress(address) {
		return domainerrors.BadRequest("invalid collector address")
	}
	return u.feeRepo.SetCollector(ctx, address, enabled)
}

// ListCollectors lists the collector allow-list.
func (u *FeeUsecase) ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error) {
	return u.feeRepo.ListCollectors(ctx)
}

// GetBalance returns the accrued fee balance for one token.
func (u *FeeUsecase) GetBalance(ctx context.Context, token string) (*big.Int, error) {
	if !utils.IsHexAddress(token) {
		return nil, domainerrors.BadRequest("invalid token address")
	}
	return u.feeRepo.GetBalance(ctx, token)
}

// ListBalances returns the full accrued ledger.
func (u *FeeUsecase) ListBalances(ctx context.Context) ([]*entities.FeeBalance, error) {
	return u.feeRepo.ListBalances(ctx)
}

// Estimate quotes the fee split and, where the protocol charges one, the
// native messaging fee for a prospective transfer. Purely read-only.
func (u *FeeUsecase) Estimate(ctx context.Context, sourceToken, destToken, amountStr string, destChainID uint64) (*entities.FeeEstimate, error) {
	amount, ok := new(big.Int).SetString(amountStr, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, domainerrors.BadRequest("invalid amount")
	}

	key := RouteKeyOf(sourceToken, u.localChainID, destToken, destChainID)
	route, err := u.routeRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, domainerrors.ConfigurationError("no route for token pair")
	}
	if destChainID != u.localChainID && !route.Configured() {
		return nil, domainerrors.ConfigurationError("route disabled")
	}

	settings, err := u.feeRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	fee := CalculateFee(amount, settings.BasisPoints)
	net := new(big.Int).Sub(amount, fee)

	estimate := &entities.FeeEstimate{
		Amount:      amount.String(),
		BasisPoints: settings.BasisPoints,
		Fee:         fee.String(),
		NetAmount:   net.String(),
		Protocol:    route.Protocol.String(),
	}

	if adapter, ok := u.adapters[route.Protocol]; ok {
		nativeFee, err := adapter.QuoteNativeFee(ctx, &entities.BridgeRequest{
			Route:  route,
			Token:  route.SourceToken,
			Amount: net,
		})
		if err != nil {
			return nil, domainerrors.ExternalCallFailure(err)
		}
		estimate.NativeFee = nativeFee.String()
	}

	return estimate, nil
}
