package entities

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// AuthorizedSender is a (source domain, 32-byte sender identity) pair allowed
// to trigger inbound settlement. This gate is independent of the bridge's own
// attestation check: a correctly attested message from an unexpected source
// contract is still rejected.
type AuthorizedSender struct {
	ID           uuid.UUID `json:"id"`
	SourceDomain uint32    `json:"sourceDomain"`
	Sender       string    `json:"sender"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SupportedToken gates which tokens the hook receiver will settle.
type SupportedToken struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HookPayload is the typed form of the destination-side instruction embedded
// in a cross-chain message. It is ABI-encoded at the boundary; internally it
// is never handled as raw bytes.
type HookPayload struct {
	Recipient     string
	BridgedToken  string
	BridgedAmount *big.Int
	TargetToken   string
	MinAmountOut  *big.Int
}

// InboundMessage is one finalized cross-chain message as delivered by the
// chain-local transport after bridge-level attestation.
type InboundMessage struct {
	SourceDomain uint32 `json:"sourceDomain" binding:"required"`
	Sender       string `json:"sender" binding:"required"`
	Payload      string `json:"payload" binding:"required"`
	MessageNonce uint64 `json:"messageNonce"`
}
