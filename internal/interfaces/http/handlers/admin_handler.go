package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/interfaces/http/response"
	"stable-route.backend/pkg/utils"
)

type RouteAdminService interface {
	ConfigureRoute(ctx context.Context, input *entities.RouteConfigInput) (*entities.Route, error)
	ListRoutes(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error)
	SetProtocolContract(ctx context.Context, protocol entities.Protocol, address string) error
	ListProtocolContracts(ctx context.Context) ([]*entities.ProtocolContract, error)
	SetAuthorizedSender(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error
	ListAuthorizedSenders(ctx context.Context) ([]*entities.AuthorizedSender, error)
	SetSupportedToken(ctx context.Context, token string, enabled bool) error
	ListSupportedTokens(ctx context.Context) ([]*entities.SupportedToken, error)
}

type FeeAdminService interface {
	GetSettings(ctx context.Context) (*entities.FeeSettings, error)
	UpdateBasisPoints(ctx context.Context, basisPoints uint32) error
	SetCollector(ctx context.Context, address string, enabled bool) error
	ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error)
	ListBalances(ctx context.Context) ([]*entities.FeeBalance, error)
}

// PauseSwitch is the emergency stop for outbound dispatch.
type PauseSwitch interface {
	Pause()
	Resume()
	Paused() bool
}

// AdminHandler handles operator configuration endpoints
type AdminHandler struct {
	registry RouteAdminService
	fees     FeeAdminService
	pauser   PauseSwitch
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registry RouteAdminService, fees FeeAdminService, pauser PauseSwitch) *AdminHandler {
	return &AdminHandler{registry: registry, fees: fees, pauser: pauser}
}

// ConfigureRoute creates or overwrites a route
// POST /api/v1/admin/routes
func (h *AdminHandler) ConfigureRoute(c *gin.Context) {
	var input entities.RouteConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	route, err := h.registry.ConfigureRoute(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"route": route})
}

// ListRoutes lists configured routes
// GET /api/v1/admin/routes
func (h *AdminHandler) ListRoutes(c *gin.Context) {
	var sourceChainID, destChainID *uint64
	if s := c.Query("sourceChainId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid sourceChainId"))
			return
		}
		sourceChainID = &v
	}
	if s := c.Query("destChainId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid destChainId"))
			return
		}
		destChainID = &v
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)

	routes, total, err := h.registry.ListRoutes(c.Request.Context(), sourceChainID, destChainID, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"routes":     routes,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

type protocolContractInput struct {
	Protocol uint8  `json:"protocol" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// SetProtocolContract registers the canonical bridge contract for a protocol
// POST /api/v1/admin/protocol-contracts
func (h *AdminHandler) SetProtocolContract(c *gin.Context) {
	var input protocolContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.registry.SetProtocolContract(c.Request.Context(), entities.Protocol(input.Protocol), input.Address); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"protocol": entities.Protocol(input.Protocol).String(), "address": input.Address})
}

// ListProtocolContracts lists registered protocol contracts
// GET /api/v1/admin/protocol-contracts
func (h *AdminHandler) ListProtocolContracts(c *gin.Context) {
	contracts, err := h.registry.ListProtocolContracts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contracts": contracts})
}

type authorizedSenderInput struct {
	SourceDomain *uint32 `json:"sourceDomain" binding:"required"`
	Sender       string  `json:"sender" binding:"required"`
	Enabled      *bool   `json:"enabled" binding:"required"`
}

// SetAuthorizedSender allows or revokes a remote sender for inbound messages
// POST /api/v1/admin/authorized-senders
func (h *AdminHandler) SetAuthorizedSender(c *gin.Context) {
	var input authorizedSenderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.registry.SetAuthorizedSender(c.Request.Context(), *input.SourceDomain, input.Sender, *input.Enabled); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sourceDomain": *input.SourceDomain, "sender": input.Sender, "enabled": *input.Enabled})
}

// ListAuthorizedSenders lists the inbound sender allow-list
// GET /api/v1/admin/authorized-senders
func (h *AdminHandler) ListAuthorizedSenders(c *gin.Context) {
	senders, err := h.registry.ListAuthorizedSenders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"senders": senders})
}

type supportedTokenInput struct {
	Address string `json:"address" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// SetSupportedToken allows or revokes a token for inbound settlement
// POST /api/v1/admin/supported-tokens
func (h *AdminHandler) SetSupportedToken(c *gin.Context) {
	var input supportedTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.registry.SetSupportedToken(c.Request.Context(), input.Address, *input.Enabled); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"address": input.Address, "enabled": *input.Enabled})
}

// ListSupportedTokens lists the inbound token allow-list
// GET /api/v1/admin/supported-tokens
func (h *AdminHandler) ListSupportedTokens(c *gin.Context) {
	tokens, err := h.registry.ListSupportedTokens(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}

type feeConfigInput struct {
	BasisPoints *uint32 `json:"basisPoints" binding:"required"`
}

// UpdateFeeConfig updates the protocol fee rate
// PUT /api/v1/admin/fee-config
func (h *AdminHandler) UpdateFeeConfig(c *gin.Context) {
	var input feeConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.fees.UpdateBasisPoints(c.Request.Context(), *input.BasisPoints); err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.fees.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// GetFeeConfig returns the current fee settings
// GET /api/v1/admin/fee-config
func (h *AdminHandler) GetFeeConfig(c *gin.Context) {
	settings, err := h.fees.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

type feeCollectorInput struct {
	Address string `json:"address" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// SetFeeCollector allows or revokes a fee collector address
// POST /api/v1/admin/fee-collectors
func (h *AdminHandler) SetFeeCollector(c *gin.Context) {
	var input feeCollectorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.fees.SetCollector(c.Request.Context(), input.Address, *input.Enabled); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"address": input.Address, "enabled": *input.Enabled})
}

// ListFeeCollectors lists fee collector addresses
// GET /api/v1/admin/fee-collectors
func (h *AdminHandler) ListFeeCollectors(c *gin.Context) {
	collectors, err := h.fees.ListCollectors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"collectors": collectors})
}

// ListFeeBalances lists accrued fee balances per token
// GET /api/v1/admin/fee-balances
func (h *AdminHandler) ListFeeBalances(c *gin.Context) {
	balances, err := h.fees.ListBalances(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"balances": balances})
}

// Pause stops outbound transfer dispatch
// POST /api/v1/admin/pause
func (h *AdminHandler) Pause(c *gin.Context) {
	h.pauser.Pause()
	response.Success(c, http.StatusOK, gin.H{"paused": true})
}

// Resume re-enables outbound transfer dispatch
// POST /api/v1/admin/resume
func (h *AdminHandler) Resume(c *gin.Context) {
	h.pauser.Resume()
	response.Success(c, http.StatusOK, gin.H{"paused": false})
}

// GetPauseState reports the dispatch pause switch
// GET /api/v1/admin/pause
func (h *AdminHandler) GetPauseState(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"paused": h.pauser.Paused()})
}
