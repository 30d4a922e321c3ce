package repositories

import (
	"context"

	"github.com/google/uuid"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/pkg/utils"
)

// TransferRepository persists outbound transfer records. Rows are immutable
// except for the derived status column, which trails appended events.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entities.Transfer) error
	GetByTransferID(ctx context.Context, transferID string) (*entities.Transfer, error)
	List(ctx context.Context, caller *string, pagination utils.PaginationParams) ([]*entities.Transfer, int64, error)
	ListByStatus(ctx context.Context, status entities.TransferStatus, protocol entities.Protocol, limit int) ([]*entities.Transfer, error)
	UpdateStatus(ctx context.Context, transferID string, status entities.TransferStatus) error
}

// TransferEventRepository appends and reads durable event rows.
type TransferEventRepository interface {
	Create(ctx context.Context, event *entities.TransferEvent) error
	GetByTransferID(ctx context.Context, transferID string) ([]*entities.TransferEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TransferEvent, error)
}

// NonceRepository hands out per-caller monotone nonces used to derive
// transfer ids.
type NonceRepository interface {
	Next(ctx context.Context, caller string) (uint64, error)
}
