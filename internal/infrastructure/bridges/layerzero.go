package bridges

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/infrastructure/blockchain"
)

// LayerZeroEndpointABI covers send plus the fee estimate view.
var LayerZeroEndpointABI = blockchain.MustParseABI(`[
	{"inputs":[{"internalType":"uint16","name":"dstChainId","type":"uint16"},{"internalType":"bytes","name":"destination","type":"bytes"},{"internalType":"bytes","name":"payload","type":"bytes"},{"internalType":"address","name":"refundAddress","type":"address"},{"internalType":"address","name":"zroPaymentAddress","type":"address"},{"internalType":"bytes","name":"adapterParams","type":"bytes"}],"name":"send","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"uint16","name":"dstChainId","type":"uint16"},{"internalType":"address","name":"userApplication","type":"address"},{"internalType":"bytes","name":"payload","type":"bytes"},{"internalType":"bool","name":"payInZRO","type":"bool"},{"internalType":"bytes","name":"adapterParam","type":"bytes"}],"name":"estimateFees","outputs":[{"internalType":"uint256","name":"nativeFee","type":"uint256"},{"internalType":"uint256","name":"zroFee","type":"uint256"}],"stateMutability":"view","type":"function"}
]`)

// LayerZeroAdapter sends a cross-chain message via the configured endpoint.
// Same-token routes carry a plain delivery payload; cross-token routes carry
// the compose payload so the destination router can swap before delivery.
type LayerZeroAdapter struct {
	baseAdapter
}

func NewLayerZeroAdapter(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) *LayerZeroAdapter {
	return &LayerZeroAdapter{newBaseAdapter(client, custody, ownerKey)}
}

func (a *LayerZeroAdapter) Send(ctx context.Context, req *entities.BridgeRequest) (string, error) {
	payload := req.HookPayload
	if len(payload) == 0 {
		direct, err := EncodeHookPayload(&entities.HookPayload{
			Recipient:     req.Recipient,
			BridgedToken:  req.Token,
			BridgedAmount: req.Amount,
			TargetToken:   req.Route.DestToken,
			MinAmountOut:  req.Amount,
		})
		if err != nil {
			return "", err
		}
		payload = direct
	}

	fee, err := a.QuoteNativeFee(ctx, req)
	if err != nil {
		return "", err
	}

	destination := remoteDestination(req.Route)
	return a.client.TransactWithValue(ctx, a.ownerKey, req.Route.BridgeContract, LayerZeroEndpointABI, fee, "send",
		uint16(req.Route.ProtocolDomain),
		destination,
		payload,
		common.HexToAddress(a.custody.Address()),
		common.Address{},
		[]byte{},
	)
}

// QuoteNativeFee asks the endpoint what the message costs in native units.
func (a *LayerZeroAdapter) QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error) {
	payload := req.HookPayload
	if payload == nil {
		payload = []byte{}
	}
	data, err := LayerZeroEndpointABI.Pack("estimateFees",
		uint16(req.Route.ProtocolDomain),
		common.HexToAddress(a.custody.Address()),
		payload,
		false,
		[]byte{},
	)
	if err != nil {
		return nil, err
	}
	out, err := a.client.CallView(ctx, req.Route.BridgeContract, data)
	if err != nil {
		return nil, fmt.Errorf("lz fee estimate failed: %w", err)
	}
	values, err := LayerZeroEndpointABI.Unpack("estimateFees", out)
	if err != nil {
		return nil, err
	}
	nativeFee, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected estimateFees output")
	}
	return nativeFee, nil
}

// remoteDestination builds the packed (remote, local) path LayerZero v1
// expects. The remote peer rides in the route's extraData; the recipient is
// the fallback when no peer is configured.
func remoteDestination(route *entities.Route) []byte {
	extra := common.FromHex(route.ExtraData)
	if len(extra) >= common.AddressLength {
		return extra
	}
	return common.HexToAddress(route.SwapPool).Bytes()
}
