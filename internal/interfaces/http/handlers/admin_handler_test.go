package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stable-route.backend/internal/domain/entities"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/pkg/utils"
)

type routeAdminStub struct {
	configureFn     func(ctx context.Context, input *entities.RouteConfigInput) (*entities.Route, error)
	listRoutesFn    func(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error)
	setContractFn   func(ctx context.Context, protocol entities.Protocol, address string) error
	listContractsFn func(ctx context.Context) ([]*entities.ProtocolContract, error)
	setSenderFn     func(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error
	listSendersFn   func(ctx context.Context) ([]*entities.AuthorizedSender, error)
	setTokenFn      func(ctx context.Context, token string, enabled bool) error
	listTokensFn    func(ctx context.Context) ([]*entities.SupportedToken, error)
}

func (s routeAdminStub) ConfigureRoute(ctx context.Context, input *entities.RouteConfigInput) (*entities.Route, error) {
	return s.configureFn(ctx, input)
}
func (s routeAdminStub) ListRoutes(ctx context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error) {
	return s.listRoutesFn(ctx, sourceChainID, destChainID, pagination)
}
func (s routeAdminStub) SetProtocolContract(ctx context.Context, protocol entities.Protocol, address string) error {
	return s.setContractFn(ctx, protocol, address)
}
func (s routeAdminStub) ListProtocolContracts(ctx context.Context) ([]*entities.ProtocolContract, error) {
	return s.listContractsFn(ctx)
}
func (s routeAdminStub) SetAuthorizedSender(ctx context.Context, sourceDomain uint32, sender string, enabled bool) error {
	return s.setSenderFn(ctx, sourceDomain, sender, enabled)
}
func (s routeAdminStub) ListAuthorizedSenders(ctx context.Context) ([]*entities.AuthorizedSender, error) {
	return s.listSendersFn(ctx)
}
func (s routeAdminStub) SetSupportedToken(ctx context.Context, token string, enabled bool) error {
	return s.setTokenFn(ctx, token, enabled)
}
func (s routeAdminStub) ListSupportedTokens(ctx context.Context) ([]*entities.SupportedToken, error) {
	return s.listTokensFn(ctx)
}

type feeAdminStub struct {
	getSettingsFn    func(ctx context.Context) (*entities.FeeSettings, error)
	updateBpsFn      func(ctx context.Context, basisPoints uint32) error
	setCollectorFn   func(ctx context.Context, address string, enabled bool) error
	listCollectorsFn func(ctx context.Context) ([]*entities.FeeCollector, error)
	listBalancesFn   func(ctx context.Context) ([]*entities.FeeBalance, error)
}

func (s feeAdminStub) GetSettings(ctx context.Context) (*entities.FeeSettings, error) {
	return s.getSettingsFn(ctx)
}
func (s feeAdminStub) UpdateBasisPoints(ctx context.Context, basisPoints uint32) error {
	return s.updateBpsFn(ctx, basisPoints)
}
func (s feeAdminStub) SetCollector(ctx context.Context, address string, enabled bool) error {
	return s.setCollectorFn(ctx, address, enabled)
}
func (s feeAdminStub) ListCollectors(ctx context.Context) ([]*entities.FeeCollector, error) {
	return s.listCollectorsFn(ctx)
}
func (s feeAdminStub) ListBalances(ctx context.Context) ([]*entities.FeeBalance, error) {
	return s.listBalancesFn(ctx)
}

type pauseSwitchStub struct {
	paused bool
}

func (s *pauseSwitchStub) Pause()       { s.paused = true }
func (s *pauseSwitchStub) Resume()      { s.paused = false }
func (s *pauseSwitchStub) Paused() bool { return s.paused }

func adminRouter(registry RouteAdminService, fees FeeAdminService, pauser PauseSwitch) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(registry, fees, pauser)
	r := gin.New()
	r.POST("/admin/routes", h.ConfigureRoute)
	r.GET("/admin/routes", h.ListRoutes)
	r.POST("/admin/protocol-contracts", h.SetProtocolContract)
	r.POST("/admin/authorized-senders", h.SetAuthorizedSender)
	r.POST("/admin/supported-tokens", h.SetSupportedToken)
	r.PUT("/admin/fee-config", h.UpdateFeeConfig)
	r.POST("/admin/fee-collectors", h.SetFeeCollector)
	r.GET("/admin/fee-balances", h.ListFeeBalances)
	r.POST("/admin/pause", h.Pause)
	r.POST("/admin/resume", h.Resume)
	r.GET("/admin/pause", h.GetPauseState)
	return r
}

func TestAdminHandler_ConfigureRoute(t *testing.T) {
	registry := routeAdminStub{
		configureFn: func(_ context.Context, input *entities.RouteConfigInput) (*entities.Route, error) {
			assert.Equal(t, entities.ProtocolCCTP, input.Protocol)
			return &entities.Route{Key: "0xkey", Protocol: input.Protocol}, nil
		},
	}
	r := adminRouter(registry, feeAdminStub{}, &pauseSwitchStub{})

	body := []byte(`{
		"sourceToken": "0x2222222222222222222222222222222222222222",
		"sourceChainId": 8453,
		"destToken": "0x3333333333333333333333333333333333333333",
		"destChainId": 42161,
		"protocol": 1,
		"protocolDomain": 3,
		"bridgeContract": "0x5555555555555555555555555555555555555555"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/routes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "0xkey")
}

func TestAdminHandler_ConfigureRouteMapsValidationError(t *testing.T) {
	registry := routeAdminStub{
		configureFn: func(_ context.Context, _ *entities.RouteConfigInput) (*entities.Route, error) {
			return nil, domainerrors.BadRequest("bridgeContract is required for protocol CCTP")
		},
	}
	r := adminRouter(registry, feeAdminStub{}, &pauseSwitchStub{})

	body := []byte(`{
		"sourceToken": "0x2222222222222222222222222222222222222222",
		"sourceChainId": 8453,
		"destToken": "0x3333333333333333333333333333333333333333",
		"destChainId": 42161,
		"protocol": 1
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/routes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bridgeContract")
}

func TestAdminHandler_ListRoutesParsesFilters(t *testing.T) {
	registry := routeAdminStub{
		listRoutesFn: func(_ context.Context, sourceChainID, destChainID *uint64, pagination utils.PaginationParams) ([]*entities.Route, int64, error) {
			require.NotNil(t, destChainID)
			assert.EqualValues(t, 42161, *destChainID)
			assert.Nil(t, sourceChainID)
			return []*entities.Route{{Key: "0xkey"}}, 1, nil
		},
	}
	r := adminRouter(registry, feeAdminStub{}, &pauseSwitchStub{})

	req := httptest.NewRequest(http.MethodGet, "/admin/routes?destChainId=42161", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/routes?destChainId=nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_SetAuthorizedSenderRequiresFields(t *testing.T) {
	var gotDomain uint32
	var gotEnabled bool
	registry := routeAdminStub{
		setSenderFn: func(_ context.Context, sourceDomain uint32, sender string, enabled bool) error {
			gotDomain = sourceDomain
			gotEnabled = enabled
			return nil
		},
	}
	r := adminRouter(registry, feeAdminStub{}, &pauseSwitchStub{})

	body := []byte(`{"sourceDomain": 3, "sender": "0xsender", "enabled": false}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/authorized-senders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, gotDomain)
	assert.False(t, gotEnabled)

	// Missing enabled field is a binding error, not a silent default.
	body = []byte(`{"sourceDomain": 3, "sender": "0xsender"}`)
	req = httptest.NewRequest(http.MethodPost, "/admin/authorized-senders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_UpdateFeeConfig(t *testing.T) {
	var gotBps uint32
	fees := feeAdminStub{
		updateBpsFn: func(_ context.Context, basisPoints uint32) error {
			gotBps = basisPoints
			return nil
		},
		getSettingsFn: func(_ context.Context) (*entities.FeeSettings, error) {
			return &entities.FeeSettings{BasisPoints: 25}, nil
		},
	}
	r := adminRouter(routeAdminStub{}, fees, &pauseSwitchStub{})

	body := []byte(`{"basisPoints": 25}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/fee-config", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 25, gotBps)
	assert.Contains(t, w.Body.String(), "25")
}

func TestAdminHandler_PauseResume(t *testing.T) {
	pauser := &pauseSwitchStub{}
	r := adminRouter(routeAdminStub{}, feeAdminStub{}, pauser)

	req := httptest.NewRequest(http.MethodPost, "/admin/pause", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, pauser.paused)

	req = httptest.NewRequest(http.MethodGet, "/admin/pause", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "true")

	req = httptest.NewRequest(http.MethodPost, "/admin/resume", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, pauser.paused)
}

func TestAdminHandler_ListFeeBalances(t *testing.T) {
	fees := feeAdminStub{
		listBalancesFn: func(_ context.Context) ([]*entities.FeeBalance, error) {
			return []*entities.FeeBalance{{Token: "0x2222222222222222222222222222222222222222", Amount: "350"}}, nil
		},
	}
	r := adminRouter(routeAdminStub{}, fees, &pauseSwitchStub{})

	req := httptest.NewRequest(http.MethodGet, "/admin/fee-balances", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "350")
}
