package usecases

import (
	"context"
	"math/big"

	"stable-route.backend/internal/domain/entities"
)

// BridgeAdapter is one outbound protocol binding. Implementations stage
// custody funds and submit the protocol-specific bridge call.
type BridgeAdapter interface {
	Send(ctx context.Context, req *entities.BridgeRequest) (string, error)
	QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error)
}

// SwapAdapter executes a token conversion against a configured pool using
// custody funds. Returns the output amount and the transaction hash.
type SwapAdapter interface {
	Swap(ctx context.Context, pool, tokenIn, tokenOut string, amountIn, minAmountOut *big.Int, recipient string) (*big.Int, string, error)
}

// TokenCustody moves ERC20 funds between callers, the custody address and
// recipients.
type TokenCustody interface {
	Address() string
	Balance(ctx context.Context, token, owner string) (*big.Int, error)
	Allowance(ctx context.Context, token, owner string) (*big.Int, error)
	Pull(ctx context.Context, token, from string, amount *big.Int) (string, error)
	Release(ctx context.Context, token, to string, amount *big.Int) (string, error)
}

// EventPublisher fans out event rows to live consumers. Publishing is
// best-effort; the durable record is the transfer_events table.
type EventPublisher interface {
	Publish(ctx context.Context, event *entities.TransferEvent) error
}

// AdapterRegistry maps configured protocols to their outbound adapters.
type AdapterRegistry map[entities.Protocol]BridgeAdapter
