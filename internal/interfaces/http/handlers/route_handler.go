package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/interfaces/http/response"
	"stable-route.backend/internal/usecases"
	"stable-route.backend/pkg/utils"
)

type RouteQueryService interface {
	GetRoute(ctx context.Context, sourceToken string, sourceChainID uint64, destToken string, destChainID uint64) (*entities.Route, error)
	ListRoutes(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error)
}

type FeeQueryService interface {
	Estimate(ctx context.Context, sourceToken, destToken, amountStr string, destChainID uint64) (*entities.FeeEstimate, error)
}

type RoutePlannerService interface {
	PlanRoute(sourceChain, sourceToken, destChain, destToken string) (*usecases.PlannedRoute, error)
	ValidDestinationTokens(chain string) ([]string, error)
	Deployment(chain string) (*usecases.ChainDeployment, error)
}

// RouteHandler serves public route and fee lookups
type RouteHandler struct {
	routes       RouteQueryService
	fees         FeeQueryService
	planner      RoutePlannerService
	localChainID uint64
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routes RouteQueryService, fees FeeQueryService, planner RoutePlannerService, localChainID uint64) *RouteHandler {
	return &RouteHandler{routes: routes, fees: fees, planner: planner, localChainID: localChainID}
}

// GetRoute resolves the route for a token pair. Source chain defaults to the
// chain this service runs on.
// GET /api/v1/routes/key
func (h *RouteHandler) GetRoute(c *gin.Context) {
	sourceToken := c.Query("sourceToken")
	destToken := c.Query("destToken")
	if !utils.IsHexAddress(sourceToken) || !utils.IsHexAddress(destToken) {
		response.Error(c, domainerrors.BadRequest("sourceToken and destToken must be hex addresses"))
		return
	}

	destChainID, err := strconv.ParseUint(c.Query("destChainId"), 10, 64)
	if err != nil || destChainID == 0 {
		response.Error(c, domainerrors.BadRequest("Invalid destChainId"))
		return
	}

	sourceChainID := h.localChainID
	if s := c.Query("sourceChainId"); s != "" {
		sourceChainID, err = strconv.ParseUint(s, 10, 64)
		if err != nil || sourceChainID == 0 {
			response.Error(c, domainerrors.BadRequest("Invalid sourceChainId"))
			return
		}
	}

	route, err := h.routes.GetRoute(c.Request.Context(), sourceToken, sourceChainID, destToken, destChainID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Route not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"route": route, "configured": route.Configured()})
}

// ListConfiguredRoutes lists routes, optionally filtered by chain
// GET /api/v1/routes/configured
func (h *RouteHandler) ListConfiguredRoutes(c *gin.Context) {
	var destChainID *uint64
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

	sourceChainID := h.localChainID
	routes, total, err := h.routes.ListRoutes(c.Request.Context(), &sourceChainID, destChainID, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"routes":     routes,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// EstimateFee quotes the protocol fee and any native bridge fee for a transfer
// GET /api/v1/fees/estimate
func (h *RouteHandler) EstimateFee(c *gin.Context) {
	sourceToken := c.Query("sourceToken")
	destToken := c.Query("destToken")
	amount := c.Query("amount")
	if sourceToken == "" || destToken == "" || amount == "" {
		response.Error(c, domainerrors.BadRequest("sourceToken, destToken and amount are required"))
		return
	}

	destChainID, err := strconv.ParseUint(c.Query("destChainId"), 10, 64)
	if err != nil || destChainID == 0 {
		response.Error(c, domainerrors.BadRequest("Invalid destChainId"))
		return
	}

	estimate, err := h.fees.Estimate(c.Request.Context(), sourceToken, destToken, amount, destChainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"estimate": estimate})
}

// PlanRoute recommends a protocol and step sequence for a chain and symbol
// pair. Purely advisory, nothing is reserved or configured.
// GET /api/v1/routes/plan
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	sourceChain := c.Query("sourceChain")
	sourceToken := c.Query("sourceToken")
	destChain := c.Query("destChain")
	destToken := c.Query("destToken")
	if sourceChain == "" || sourceToken == "" || destChain == "" || destToken == "" {
		response.Error(c, domainerrors.BadRequest("sourceChain, sourceToken, destChain and destToken are required"))
		return
	}

	plan, err := h.planner.PlanRoute(sourceChain, sourceToken, destChain, destToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// ListDestinationTokens lists the token symbols deliverable on a chain
// GET /api/v1/routes/destinations
func (h *RouteHandler) ListDestinationTokens(c *gin.Context) {
	chain := c.Query("chain")
	if chain == "" {
		response.Error(c, domainerrors.BadRequest("chain is required"))
		return
	}

	tokens, err := h.planner.ValidDestinationTokens(chain)
	if err != nil {
		response.Error(c, err)
		return
	}
	deployment, err := h.planner.Deployment(chain)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"chain": deployment, "tokens": tokens})
}
