package repositories

import (
	"context"

	"stable-route.backend/internal/domain/entities"
)

// AuthorizedSenderRepository persists the (domain, sender) allow-list gating
// inbound settlement.
type AuthorizedSenderRepository interface {
	Get(ctx context.Context, sourceDomain uint32, sender string) (*entities.AuthorizedSender, error)
	Set(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error
	List(ctx context.Context) ([]*entities.AuthorizedSender, error)
}

// SupportedTokenRepository persists the hook receiver's token allow-list.
type SupportedTokenRepository interface {
	IsSupported(ctx context.Context, token string) (bool, error)
	Set(ctx context.Context, token string, enabled bool) error
	List(ctx context.Context) ([]*entities.SupportedToken, error)
}

// InboundNonceRepository records settled inbound message nonces so a
// relayer retry cannot release custody funds twice. Consume returns
// ErrAlreadyExists when the pair was recorded before.
type InboundNonceRepository interface {
	Consume(ctx context.Context, sourceDomain uint32, nonce uint64) error
	Consumed(ctx context.Context, sourceDomain uint32, nonce uint64) (bool, error)
}

// ProtocolContractRepository persists the canonical bridge contract per
// protocol on the local chain.
type ProtocolContractRepository interface {
	GetByProtocol(ctx context.Context, protocol entities.Protocol) (*entities.ProtocolContract, error)
	Set(ctx context.Context, protocol entities.Protocol, address string) error
	List(ctx context.Context) ([]*entities.ProtocolContract, error)
}
