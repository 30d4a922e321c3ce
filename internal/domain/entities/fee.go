package entities

import (
	"time"

	"github.com/google/uuid"
)

// FeeSettings holds the protocol fee rate. A single live row; updates
// overwrite in place.
type FeeSettings struct {
	ID          uuid.UUID `json:"id"`
	BasisPoints uint32    `json:"basisPoints"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FeeCollector is an address allowed to credit fees into the ledger.
type FeeCollector struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeeBalance is the accrued fee amount per token. It only grows through
// collection; withdrawals are an out-of-band concern.
type FeeBalance struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	Amount    string    `json:"amount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeeEstimate is the read-only quote returned before a transfer.
type FeeEstimate struct {
	Amount      string `json:"amount"`
	BasisPoints uint32 `json:"basisPoints"`
	Fee         string `json:"fee"`
	NetAmount   string `json:"netAmount"`
	NativeFee   string `json:"nativeFee,omitempty"`
	Protocol    string `json:"protocol"`
}
