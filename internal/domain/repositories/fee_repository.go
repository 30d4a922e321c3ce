package repositories

import (
	"context"
	"math/big"

	"stable-route.backend/internal/domain/entities"
)

// FeeRepository persists fee settings, the collector allow-list and the
// per-token fee ledger.
type FeeRepository interface {
	GetSettings(ctx context.Context) (*entities.FeeSettings, error)
	UpdateSettings(ctx context.Context, basisPoints uint32) error

	IsCollector(ctx context.Context, address string) (bool, error)
	SetCollector(ctx context.Context, address string, enabled bool) error
	ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error)

	// Credit adds amount to the token's accrued balance. Balances only grow
	// through this path.
	Credit(ctx context.Context, token string, amount *big.Int) error
	GetBalance(ctx context.Context, token string) (*big.Int, error)
	ListBalances(ctx context.Context) ([]*entities.FeeBalance, error)
}
