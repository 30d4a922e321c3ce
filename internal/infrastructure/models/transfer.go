package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transfer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TransferID   string    `gorm:"type:varchar(66);not null;uniqueIndex"`
	Caller       string    `gorm:"type:varchar(255);not null;index"`
	Protocol     uint8     `gorm:"not null"`
	SourceToken  string    `gorm:"type:varchar(255);not null"`
	DestToken    string    `gorm:"type:varchar(255);not null"`
	Amount       string    `gorm:"type:varchar(100);not null"` // BigInt as string
	FeeAmount    string    `gorm:"type:varchar(100);not null;default:'0'"`
	NetAmount    string    `gorm:"type:varchar(100);not null"`
	DestChainID  uint64    `gorm:"not null"`
	Recipient    string    `gorm:"type:varchar(255);not null"`
	Status       string    `gorm:"type:varchar(50);not null;index"`
	SourceTxHash *string   `gorm:"type:varchar(255);index"`
	MessageNonce *uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

type TransferEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TransferID   *string   `gorm:"type:varchar(66);index"`
	EventType    string    `gorm:"type:varchar(50);not null;index"`
	Protocol     uint8     `gorm:"not null;default:0"`
	Token        string    `gorm:"type:varchar(255)"`
	Amount       string    `gorm:"type:varchar(100)"`
	Recipient    string    `gorm:"type:varchar(255)"`
	SourceDomain *uint32
	Sender       *string `gorm:"type:varchar(66)"`
	TxHash       *string `gorm:"type:varchar(255)"`
	Metadata     string  `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time
}

// CallerNonce hands out the per-caller sequence used to derive transfer ids.
type CallerNonce struct {
	Caller    string `gorm:"type:varchar(255);primaryKey"`
	Nonce     uint64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
