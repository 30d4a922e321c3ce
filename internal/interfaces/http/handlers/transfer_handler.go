package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/interfaces/http/middleware"
	"stable-route.backend/internal/interfaces/http/response"
	"stable-route.backend/pkg/utils"
)

type TransferService interface {
	Transfer(ctx context.Context, caller string, input *entities.TransferInput) (*entities.TransferResponse, error)
	TransferWithSwap(ctx context.Context, caller string, input *entities.TransferWithSwapInput) (*entities.TransferResponse, error)
	GetTransfer(ctx context.Context, transferID string) (*entities.Transfer, error)
	ListTransfers(ctx context.Context, caller *string, pagination utils.PaginationParams) ([]*entities.Transfer, int64, error)
	GetTransferEvents(ctx context.Context, transferID string) ([]*entities.TransferEvent, error)
}

// TransferHandler handles outbound transfer endpoints
type TransferHandler struct {
	transfers TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transfers TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

type transferRequest struct {
	Caller string `json:"caller" binding:"required"`
	entities.TransferInput
}

type transferWithSwapRequest struct {
	Caller string `json:"caller" binding:"required"`
	entities.TransferWithSwapInput
}

// CreateTransfer dispatches an outbound transfer
// POST /api/v1/transfers
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.transfers.Transfer(c.Request.Context(), req.Caller, &req.TransferInput)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountTransferDispatched(resp.Protocol)
	response.Success(c, http.StatusCreated, resp)
}

// CreateTransferWithSwap dispatches a transfer with a destination swap
// POST /api/v1/transfers/with-swap
func (h *TransferHandler) CreateTransferWithSwap(c *gin.Context) {
	var req transferWithSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.transfers.TransferWithSwap(c.Request.Context(), req.Caller, &req.TransferWithSwapInput)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountTransferDispatched(resp.Protocol)
	response.Success(c, http.StatusCreated, resp)
}

// GetTransfer gets a transfer by its ID
// GET /api/v1/transfers/:id
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	transferID := c.Param("id")

	transfer, err := h.transfers.GetTransfer(c.Request.Context(), transferID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Transfer not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transfer": transfer})
}

// ListTransfers lists transfers, optionally filtered by caller
// GET /api/v1/transfers
func (h *TransferHandler) ListTransfers(c *gin.Context) {
	var caller *string
	if s := c.Query("caller"); s != "" {
		if !utils.IsHexAddress(s) {
			response.Error(c, domainerrors.BadRequest("Invalid caller address"))
			return
		}
		caller = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	pagination := utils.GetPaginationParams(page, limit)

	transfers, total, err := h.transfers.ListTransfers(c.Request.Context(), caller, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transfers":  transfers,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// GetTransferEvents returns the event feed for a transfer
// GET /api/v1/transfers/:id/events
func (h *TransferHandler) GetTransferEvents(c *gin.Context) {
	transferID := c.Param("id")

	events, err := h.transfers.GetTransferEvents(c.Request.Context(), transferID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}
