package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeSetting holds the live fee rate. The table carries a single row that
// updates overwrite in place.
type FeeSetting struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BasisPoints uint32    `gorm:"not null;default:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FeeCollector struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Address   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Enabled   bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type FeeBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Token     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Amount    string    `gorm:"type:varchar(100);not null;default:'0'"` // BigInt as string
	CreatedAt time.Time
	UpdatedAt time.Time
}
