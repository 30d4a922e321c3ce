package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransferStatus tracks what this service has observed about an outbound
// transfer. The source-side record itself is immutable; status is derived
// from appended events.
type TransferStatus string

const (
	TransferStatusInitiated TransferStatus = "INITIATED"
	TransferStatusAttested  TransferStatus = "ATTESTED"
	TransferStatusSettled   TransferStatus = "SETTLED"
)

// TransferEventType represents transfer event type
type TransferEventType string

const (
	TransferEventTypeRouteConfigured    TransferEventType = "ROUTE_CONFIGURED"
	TransferEventTypeProtocolConfigured TransferEventType = "PROTOCOL_CONFIGURED"
	TransferEventTypeInitiated          TransferEventType = "TRANSFER_INITIATED"
	TransferEventTypeAttested           TransferEventType = "ATTESTATION_RECEIVED"
	TransferEventTypeInboundSettled     TransferEventType = "INBOUND_SETTLED"
)

// Transfer is the source-side record created the moment an outbound transfer
// commits. It is never mutated; completion is only observable on the
// destination side or through the bridge's attestation API.
type Transfer struct {
	ID            uuid.UUID      `json:"id"`
	TransferID    string         `json:"transferId"`
	Caller        string         `json:"caller"`
	Protocol      Protocol       `json:"protocol"`
	SourceToken   string         `json:"sourceToken"`
	DestToken     string         `json:"destToken"`
	Amount        string         `json:"amount"`
	FeeAmount     string         `json:"feeAmount"`
	NetAmount     string         `json:"netAmount"`
	DestChainID   uint64         `json:"destChainId"`
	Recipient     string         `json:"recipient"`
	Status        TransferStatus `json:"status"`
	SourceTxHash  null.String    `json:"sourceTxHash,omitempty"`
	MessageNonce  null.Uint64    `json:"messageNonce,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// TransferEvent is one durable event row. Events are the wire format
// consumers observe; they are append-only.
type TransferEvent struct {
	ID           uuid.UUID         `json:"id"`
	TransferID   null.String       `json:"transferId,omitempty"`
	EventType    TransferEventType `json:"eventType"`
	Protocol     Protocol          `json:"protocol"`
	Token        string            `json:"token,omitempty"`
	Amount       string            `json:"amount,omitempty"`
	Recipient    string            `json:"recipient,omitempty"`
	SourceDomain null.Uint32       `json:"sourceDomain,omitempty"`
	Sender       null.String       `json:"sender,omitempty"`
	TxHash       null.String       `json:"txHash,omitempty"`
	Metadata     interface{}       `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// TransferInput is the user payload for initiating an outbound transfer.
type TransferInput struct {
	SourceToken string `json:"sourceToken" binding:"required"`
	DestToken   string `json:"destToken" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	DestChainID uint64 `json:"destChainId" binding:"required"`
	Recipient   string `json:"recipient" binding:"required"`
}

// TransferWithSwapInput additionally carries destination swap parameters.
type TransferWithSwapInput struct {
	TransferInput
	MinAmountOut string `json:"minAmountOut" binding:"required"`
	SwapData     string `json:"swapData"`
}

// TransferResponse is returned after a transfer commits on the source side.
// It promises nothing about destination completion.
type TransferResponse struct {
	TransferID string   `json:"transferId"`
	Protocol   string   `json:"protocol"`
	FeeAmount  string   `json:"feeAmount"`
	NetAmount  string   `json:"netAmount"`
	TxHash     string   `json:"txHash,omitempty"`
	SameChain  bool     `json:"sameChain"`
}
