package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthorizedSender struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SourceDomain uint32    `gorm:"not null;uniqueIndex:idx_domain_sender"`
	Sender       string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_domain_sender"`
	Enabled      bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

type SupportedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Address   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Enabled   bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ConsumedNonce records an inbound (domain, nonce) pair that already
// settled. The unique index is the replay guard for relayer retries.
type ConsumedNonce struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SourceDomain uint32    `gorm:"not null;uniqueIndex:idx_domain_nonce"`
	Nonce        uint64    `gorm:"not null;uniqueIndex:idx_domain_nonce"`
	CreatedAt    time.Time
}
