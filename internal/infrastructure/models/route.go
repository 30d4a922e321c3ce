package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Route struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Key            string    `gorm:"type:varchar(66);not null;uniqueIndex"`
	SourceToken    string    `gorm:"type:varchar(255);not null"`
	SourceChainID  uint64    `gorm:"not null;index"`
	DestToken      string    `gorm:"type:varchar(255);not null"`
	DestChainID    uint64    `gorm:"not null;index"`
	Protocol       uint8     `gorm:"not null;default:0"`
	ProtocolDomain uint32    `gorm:"not null;default:0"`
	BridgeContract string    `gorm:"type:varchar(255)"`
	PoolID         uint32    `gorm:"not null;default:0"`
	SwapPool       string    `gorm:"type:varchar(255)"`
	ExtraData      string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

type ProtocolContract struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Protocol  uint8     `gorm:"not null;uniqueIndex"`
	Address   string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
