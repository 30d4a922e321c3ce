package bridges

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/infrastructure/blockchain"
)

// StargateRouterABI covers the pool swap entry and its fee quote.
var StargateRouterABI = blockchain.MustParseABI(`[
	{"inputs":[{"internalType":"uint16","name":"dstChainId","type":"uint16"},{"internalType":"uint256","name":"srcPoolId","type":"uint256"},{"internalType":"uint256","name":"dstPoolId","type":"uint256"},{"internalType":"address","name":"refundAddress","type":"address"},{"internalType":"uint256","name":"amountLD","type":"uint256"},{"internalType":"uint256","name":"minAmountLD","type":"uint256"},{"components":[{"internalType":"uint256","name":"dstGasForCall","type":"uint256"},{"internalType":"uint256","name":"dstNativeAmount","type":"uint256"},{"internalType":"bytes","name":"dstNativeAddr","type":"bytes"}],"internalType":"struct IStargateRouter.lzTxObj","name":"lzTxParams","type":"tuple"},{"internalType":"bytes","name":"to","type":"bytes"},{"internalType":"bytes","name":"payload","type":"bytes"}],"name":"swap","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"uint16","name":"dstChainId","type":"uint16"},{"internalType":"uint8","name":"functionType","type":"uint8"},{"internalType":"bytes","name":"toAddress","type":"bytes"},{"internalType":"bytes","name":"transferAndCallPayload","type":"bytes"},{"components":[{"internalType":"uint256","name":"dstGasForCall","type":"uint256"},{"internalType":"uint256","name":"dstNativeAmount","type":"uint256"},{"internalType":"bytes","name":"dstNativeAddr","type":"bytes"}],"internalType":"struct IStargateRouter.lzTxObj","name":"lzTxParams","type":"tuple"}],"name":"quoteLayerZeroFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"},{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`)

// stargateLzTxObj mirrors the router's lzTxObj tuple for ABI packing.
type stargateLzTxObj struct {
	DstGasForCall   *big.Int
	DstNativeAmount *big.Int
	DstNativeAddr   []byte
}

// stargatePoolBpsTolerance absorbs pool rebalance fees on the destination
// side; Stargate deliveries are otherwise native-asset-preserving.
const stargatePoolBpsTolerance = 100

// StargateAdapter routes through the configured pool id, staying in the
// same asset end to end.
type StargateAdapter struct {
	baseAdapter
}

func NewStargateAdapter(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) *StargateAdapter {
	return &StargateAdapter{newBaseAdapter(client, custody, ownerKey)}
}

func (a *StargateAdapter) Send(ctx context.Context, req *entities.BridgeRequest) (string, error) {
	if req.Route.PoolID == 0 {
		return "", fmt.Errorf("stargate route requires a pool id")
	}
	if _, err := a.custody.Approve(ctx, req.Token, req.Route.BridgeContract, req.Amount); err != nil {
		return "", fmt.Errorf("approve stargate router: %w", err)
	}

	fee, err := a.QuoteNativeFee(ctx, req)
	if err != nil {
		return "", err
	}

	minAmount := new(big.Int).Mul(req.Amount, big.NewInt(10000-stargatePoolBpsTolerance))
	minAmount.Div(minAmount, big.NewInt(10000))

	poolID := new(big.Int).SetUint64(uint64(req.Route.PoolID))
	return a.client.TransactWithValue(ctx, a.ownerKey, req.Route.BridgeContract, StargateRouterABI, fee, "swap",
		uint16(req.Route.ProtocolDomain),
		poolID,
		poolID,
		common.HexToAddress(a.custody.Address()),
		req.Amount,
		minAmount,
		stargateLzTxObj{DstGasForCall: big.NewInt(0), DstNativeAmount: big.NewInt(0), DstNativeAddr: []byte{}},
		common.HexToAddress(req.Recipient).Bytes(),
		[]byte{},
	)
}

// QuoteNativeFee asks the router for the LayerZero messaging cost.
func (a *StargateAdapter) QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error) {
	data, err := StargateRouterABI.Pack("quoteLayerZeroFee",
		uint16(req.Route.ProtocolDomain),
		uint8(1),
		common.HexToAddress(req.Recipient).Bytes(),
		[]byte{},
		stargateLzTxObj{DstGasForCall: big.NewInt(0), DstNativeAmount: big.NewInt(0), DstNativeAddr: []byte{}},
	)
	if err != nil {
		return nil, err
	}
	out, err := a.client.CallView(ctx, req.Route.BridgeContract, data)
	if err != nil {
		return nil, fmt.Errorf("stargate fee quote failed: %w", err)
	}
	values, err := StargateRouterABI.Unpack("quoteLayerZeroFee", out)
	if err != nil {
		return nil, err
	}
	nativeFee, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected quoteLayerZeroFee output")
	}
	return nativeFee, nil
}
