package repositories

import "context"

// UnitOfWork runs a group of repository writes atomically. Settlement
// uses it so the transfer record, its events, and fee balances commit
// or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
