package bridges

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stable-route.backend/internal/domain/entities"
	domainErrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/infrastructure/blockchain"
)

const (
	testOwnerKey = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	testCustody  = "0x90f79bf6eb2c4f870365e785982e1f101e93b906"
)

type recordedTx struct {
	To     string
	Method string
	Args   []interface{}
}

// newRecordingClient returns a client whose transactions land in the
// returned slice instead of a network.
func newRecordingClient(t *testing.T, calls *[]recordedTx, callView func(ctx context.Context, to string, data []byte) ([]byte, error)) *blockchain.EVMClient {
	t.Helper()
	transact := func(ctx context.Context, to string, method string, args []interface{}) (string, error) {
		*calls = append(*calls, recordedTx{To: to, Method: method, Args: args})
		return "0xtx", nil
	}
	return blockchain.NewEVMClientWithHooks(big.NewInt(1), callView, transact)
}

func testRoute(protocol entities.Protocol) *entities.Route {
	return &entities.Route{
		SourceToken:    "0x1111111111111111111111111111111111111111",
		SourceChainID:  1,
		DestToken:      "0x2222222222222222222222222222222222222222",
		DestChainID:    137,
		Protocol:       protocol,
		ProtocolDomain: 7,
		BridgeContract: "0x3333333333333333333333333333333333333333",
		PoolID:         1,
		SwapPool:       "0x4444444444444444444444444444444444444444",
	}
}

func TestHookPayloadRoundTrip(t *testing.T) {
	in := &entities.HookPayload{
		Recipient:     "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		BridgedToken:  "0x1111111111111111111111111111111111111111",
		BridgedAmount: big.NewInt(1_000_000),
		TargetToken:   "0x2222222222222222222222222222222222222222",
		MinAmountOut:  big.NewInt(995_000),
	}

	raw, err := EncodeHookPayload(in)
	require.NoError(t, err)
	assert.Len(t, raw, 5*32)

	out, err := DecodeHookPayload(raw)
	require.NoError(t, err)
	assert.Equal(t, in.Recipient, out.Recipient)
	assert.Equal(t, in.BridgedToken, out.BridgedToken)
	assert.Equal(t, 0, in.BridgedAmount.Cmp(out.BridgedAmount))
	assert.Equal(t, in.TargetToken, out.TargetToken)
	assert.Equal(t, 0, in.MinAmountOut.Cmp(out.MinAmountOut))
}

func TestEncodeHookPayloadRequiresAmounts(t *testing.T) {
	_, err := EncodeHookPayload(&entities.HookPayload{
		Recipient:    "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		BridgedToken: "0x1111111111111111111111111111111111111111",
		TargetToken:  "0x2222222222222222222222222222222222222222",
	})
	assert.Error(t, err)
}

func TestDecodeHookPayloadRejectsGarbage(t *testing.T) {
	_, err := DecodeHookPayload([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}

func TestAddressToBytes32(t *testing.T) {
	out := AddressToBytes32("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	for i := 0; i < 12; i++ {
		assert.Zero(t, out[i])
	}
	assert.Equal(t, byte(0xf3), out[12])
	assert.Equal(t, byte(0x66), out[31])
}

func TestCCTPAdapterSend(t *testing.T) {
	var calls []recordedTx
	client := newRecordingClient(t, &calls, nil)
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	adapter := NewCCTPAdapter(client, custody, testOwnerKey)

	route := testRoute(entities.ProtocolCCTP)
	txHash, err := adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:     route,
		Token:     route.SourceToken,
		Amount:    big.NewInt(5_000_000),
		Recipient: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xtx", txHash)

	require.Len(t, calls, 2)
	assert.Equal(t, route.SourceToken, calls[0].To)
	assert.Equal(t, "approve", calls[0].Method)
	assert.Equal(t, route.BridgeContract, calls[1].To)
	assert.Equal(t, "depositForBurn", calls[1].Method)
	assert.Equal(t, uint32(7), calls[1].Args[1])
	assert.Equal(t, AddressToBytes32("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"), calls[1].Args[2])
}

func TestCCTPAdapterQuoteIsZero(t *testing.T) {
	adapter := NewCCTPAdapter(nil, nil, testOwnerKey)
	fee, err := adapter.QuoteNativeFee(context.Background(), &entities.BridgeRequest{Route: testRoute(entities.ProtocolCCTP)})
	require.NoError(t, err)
	assert.Zero(t, fee.Sign())
}

func TestCCTPHooksAdapterSendMintsToReceiver(t *testing.T) {
	var calls []recordedTx
	client := newRecordingClient(t, &calls, nil)
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	adapter := NewCCTPHooksAdapter(client, custody, testOwnerKey)

	route := testRoute(entities.ProtocolCCTPHooks)
	payload, err := EncodeHookPayload(&entities.HookPayload{
		Recipient:     "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		BridgedToken:  route.SourceToken,
		BridgedAmount: big.NewInt(5_000_000),
		TargetToken:   route.DestToken,
		MinAmountOut:  big.NewInt(4_900_000),
	})
	require.NoError(t, err)

	_, err = adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:       route,
		Token:       route.SourceToken,
		Amount:      big.NewInt(5_000_000),
		Recipient:   "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		HookPayload: payload,
	})
	require.NoError(t, err)

	require.Len(t, calls, 2)
	burn := calls[1]
	assert.Equal(t, "depositForBurnWithHook", burn.Method)
	// Minted funds land on the hook receiver, not the end recipient.
	assert.Equal(t, AddressToBytes32(route.SwapPool), burn.Args[2])
	assert.Equal(t, payload, burn.Args[7])
}

func TestCCTPHooksAdapterRequiresPayload(t *testing.T) {
	adapter := NewCCTPHooksAdapter(nil, nil, testOwnerKey)
	_, err := adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:     testRoute(entities.ProtocolCCTPHooks),
		Token:     "0x1111111111111111111111111111111111111111",
		Amount:    big.NewInt(1),
		Recipient: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	})
	assert.Error(t, err)
}

func TestLayerZeroAdapterQuotesAndSends(t *testing.T) {
	quoted, err := LayerZeroEndpointABI.Methods["estimateFees"].Outputs.Pack(big.NewInt(42), big.NewInt(0))
	require.NoError(t, err)

	var calls []recordedTx
	callView := func(ctx context.Context, to string, data []byte) ([]byte, error) {
		return quoted, nil
	}
	client := newRecordingClient(t, &calls, callView)
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	adapter := NewLayerZeroAdapter(client, custody, testOwnerKey)

	route := testRoute(entities.ProtocolLayerZero)
	fee, err := adapter.QuoteNativeFee(context.Background(), &entities.BridgeRequest{Route: route})
	require.NoError(t, err)
	assert.Equal(t, int64(42), fee.Int64())

	_, err = adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:     route,
		Token:     route.SourceToken,
		Amount:    big.NewInt(1_000_000),
		Recipient: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "send", calls[0].Method)
	assert.Equal(t, uint16(7), calls[0].Args[0])
	// No explicit payload means the adapter builds the direct delivery one.
	assert.NotEmpty(t, calls[0].Args[2])
}

func TestStargateAdapterSend(t *testing.T) {
	quoted, err := StargateRouterABI.Methods["quoteLayerZeroFee"].Outputs.Pack(big.NewInt(77), big.NewInt(0))
	require.NoError(t, err)

	var calls []recordedTx
	callView := func(ctx context.Context, to string, data []byte) ([]byte, error) {
		return quoted, nil
	}
	client := newRecordingClient(t, &calls, callView)
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	adapter := NewStargateAdapter(client, custody, testOwnerKey)

	route := testRoute(entities.ProtocolStargate)
	_, err = adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:     route,
		Token:     route.SourceToken,
		Amount:    big.NewInt(10_000),
		Recipient: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	})
	require.NoError(t, err)

	require.Len(t, calls, 2)
	swap := calls[1]
	assert.Equal(t, "swap", swap.Method)
	assert.Equal(t, uint16(7), swap.Args[0])
	srcPool, ok := swap.Args[1].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), srcPool.Int64())
	minAmount, ok := swap.Args[5].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, int64(9_900), minAmount.Int64())
}

func TestStargateAdapterRequiresPoolID(t *testing.T) {
	adapter := NewStargateAdapter(nil, nil, testOwnerKey)
	route := testRoute(entities.ProtocolStargate)
	route.PoolID = 0
	_, err := adapter.Send(context.Background(), &entities.BridgeRequest{
		Route:     route,
		Token:     route.SourceToken,
		Amount:    big.NewInt(1),
		Recipient: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
	})
	assert.Error(t, err)
}

func TestSwapExecutorEnforcesMinimumOut(t *testing.T) {
	short := make([]byte, 32)
	short[31] = 0x05
	var calls []recordedTx
	client := newRecordingClient(t, &calls, func(ctx context.Context, to string, data []byte) ([]byte, error) {
		return short, nil
	})
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	executor := NewSwapExecutor(client, custody, testOwnerKey)

	_, _, err := executor.Swap(context.Background(),
		"0x4444444444444444444444444444444444444444",
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		big.NewInt(100), big.NewInt(99),
		"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrSlippageExceeded)
	// Nothing executed after the failed simulation.
	assert.Empty(t, calls)
}

func TestSwapExecutorExecutesWhenQuoteClears(t *testing.T) {
	out := make([]byte, 32)
	out[31] = 100
	var calls []recordedTx
	client := newRecordingClient(t, &calls, func(ctx context.Context, to string, data []byte) ([]byte, error) {
		return out, nil
	})
	custody := blockchain.NewERC20Custody(client, testCustody, testOwnerKey)
	executor := NewSwapExecutor(client, custody, testOwnerKey)

	amountOut, txHash, err := executor.Swap(context.Background(),
		"0x4444444444444444444444444444444444444444",
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		big.NewInt(100), big.NewInt(99),
		"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, int64(100), amountOut.Int64())
	assert.Equal(t, "0xtx", txHash)
	require.Len(t, calls, 2)
	assert.Equal(t, "approve", calls[0].Method)
	assert.Equal(t, "swap", calls[1].Method)
}

func TestRemoteDestinationPrefersExtraData(t *testing.T) {
	route := testRoute(entities.ProtocolLayerZero)
	route.ExtraData = "0x55555555555555555555555555555555555555556666666666666666666666666666666666666666"
	dest := remoteDestination(route)
	assert.Len(t, dest, 40)

	route.ExtraData = ""
	dest = remoteDestination(route)
	assert.Len(t, dest, 20)
}
