package usecases_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/usecases"
)

func TestPlanner_USDCtoUSDCBridgesDirect(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("arbitrum", "USDC", "base", "USDC")
	require.NoError(t, err)
	assert.Equal(t, "CCTP", plan.Protocol)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
	assert.Equal(t, "arbitrum", plan.Steps[0].Chain)
	assert.Equal(t, "USDC", plan.Steps[0].FromToken)
}

func TestPlanner_NonUSDCSourceSwapsBeforeBridge(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("polygon", "USDT", "base", "USDC")
	require.NoError(t, err)
	assert.Equal(t, "CCTP", plan.Protocol)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "swap", plan.Steps[0].Action)
	assert.Equal(t, "USDT", plan.Steps[0].FromToken)
	assert.Equal(t, "USDC", plan.Steps[0].ToToken)
	assert.Equal(t, "bridge", plan.Steps[1].Action)
}

func TestPlanner_PYUSDOnlyWhereNative(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("base", "USDC", "arbitrum", "PYUSD")
	require.NoError(t, err)
	assert.Equal(t, "CCTP", plan.Protocol)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
	assert.Equal(t, "swap", plan.Steps[1].Action)
	assert.Equal(t, "PYUSD", plan.Steps[1].ToToken)

	for _, dest := range []string{"avalanche", "polygon", "base", "optimism"} {
		_, err := p.PlanRoute("arbitrum", "USDC", dest, "PYUSD")
		var appErr *domainerrors.AppError
		require.True(t, errors.As(err, &appErr), "expected rejection for %s", dest)
		assert.Contains(t, appErr.Message, "not available on this chain")
	}
}

func TestPlanner_NativeDAIRidesLayerZero(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("arbitrum", "DAI", "optimism", "DAI")
	require.NoError(t, err)
	assert.Equal(t, "LayerZero", plan.Protocol)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
	assert.Equal(t, "DAI", plan.Steps[0].FromToken)
}

func TestPlanner_DAIFromNonDAISourceRoutesViaUSDC(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("base", "USDC", "polygon", "DAI")
	require.NoError(t, err)
	assert.Equal(t, "CCTP", plan.Protocol)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
	assert.Equal(t, "swap", plan.Steps[1].Action)
	assert.Equal(t, "polygon", plan.Steps[1].Chain)
	assert.Equal(t, "DAI", plan.Steps[1].ToToken)
}

func TestPlanner_DAIUndeliverableToBase(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	_, err := p.PlanRoute("arbitrum", "DAI", "base", "DAI")
	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "not available on this chain")
}

func TestPlanner_NativeUSDTRidesStargate(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("polygon", "USDT", "avalanche", "USDT")
	require.NoError(t, err)
	assert.Equal(t, "Stargate", plan.Protocol)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
}

func TestPlanner_USDTFromUSDCSourceRoutesViaUSDC(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	plan, err := p.PlanRoute("base", "USDC", "arbitrum", "USDT")
	require.NoError(t, err)
	assert.Equal(t, "CCTP", plan.Protocol)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "bridge", plan.Steps[0].Action)
	assert.Equal(t, "swap", plan.Steps[1].Action)
	assert.Equal(t, "USDT", plan.Steps[1].ToToken)
}

func TestPlanner_USDTUndeliverableToBase(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	_, err := p.PlanRoute("optimism", "USDT", "base", "USDT")
	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "not native on this chain")
}

func TestPlanner_SameChainIsNotPlannable(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	_, err := p.PlanRoute("arbitrum", "USDC", "arbitrum", "USDT")
	require.Error(t, err)
	assert.False(t, p.IsRouteValid("arbitrum", "USDC", "arbitrum", "USDT"))
}

func TestPlanner_UnknownChainOrToken(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	_, err := p.PlanRoute("solana", "USDC", "base", "USDC")
	require.Error(t, err)

	_, err = p.PlanRoute("base", "FRAX", "arbitrum", "USDC")
	require.Error(t, err)
}

func TestPlanner_ValidDestinationTokens(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	tokens, err := p.ValidDestinationTokens("base")
	require.NoError(t, err)
	assert.Equal(t, []string{"USDC"}, tokens)

	tokens, err = p.ValidDestinationTokens("arbitrum")
	require.NoError(t, err)
	assert.Equal(t, []string{"DAI", "PYUSD", "USDC", "USDT"}, tokens)

	tokens, err = p.ValidDestinationTokens("avalanche")
	require.NoError(t, err)
	assert.Equal(t, []string{"DAI", "USDC", "USDT"}, tokens)

	_, err = p.ValidDestinationTokens("solana")
	require.Error(t, err)
}

func TestPlanner_DeploymentIdentifiers(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	dep, err := p.Deployment("arbitrum")
	require.NoError(t, err)
	assert.EqualValues(t, 42161, dep.ChainID)
	assert.EqualValues(t, 30110, dep.LzEndpointID)
	assert.EqualValues(t, 3, dep.CCTPDomain)

	_, err = p.Deployment("solana")
	require.Error(t, err)
}

func TestPlanner_IsRouteValidChecksSourceSide(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	assert.True(t, p.IsRouteValid("base", "USDC", "arbitrum", "PYUSD"))
	assert.False(t, p.IsRouteValid("base", "USDT", "arbitrum", "USDC"))
	assert.False(t, p.IsRouteValid("base", "USDC", "polygon", "PYUSD"))
}

func TestPlanner_AllRoutesSkipSameChainAndUndeliverable(t *testing.T) {
	p := usecases.NewPlannerUsecase()

	routes := p.AllRoutes()
	require.NotEmpty(t, routes)
	for _, route := range routes {
		assert.NotEqual(t, route.SourceChain, route.DestChain)
		assert.True(t, p.IsTokenNative(route.SourceChain, route.SourceToken))
		assert.True(t, p.IsTokenNative(route.DestChain, route.DestToken))
	}
}
