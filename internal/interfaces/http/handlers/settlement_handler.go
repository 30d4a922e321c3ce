package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/interfaces/http/middleware"
	"stable-route.backend/internal/interfaces/http/response"
	"stable-route.backend/internal/usecases"
)

type SettlementService interface {
	HandleInbound(ctx context.Context, transport string, msg *entities.InboundMessage) (*usecases.SettlementResult, error)
}

// SettlementHandler receives finalized bridge messages from transport relayers
type SettlementHandler struct {
	settlements SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlements SettlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

// HandleInbound settles an inbound bridge message
// POST /api/v1/settlements/inbound
func (h *SettlementHandler) HandleInbound(c *gin.Context) {
	transport, ok := middleware.GetTransport(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Relayer not authenticated"))
		return
	}

	var msg entities.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.settlements.HandleInbound(c.Request.Context(), transport, &msg)
	if err != nil {
		middleware.CountSettlement("rejected")
		response.Error(c, err)
		return
	}

	middleware.CountSettlement("settled")
	response.Success(c, http.StatusOK, gin.H{"settlement": result})
}
