package bridges

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/infrastructure/blockchain"
)

// TokenMessengerABI is the CCTP v1 burn-for-mint entry.
var TokenMessengerABI = blockchain.MustParseABI(`[
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"uint32","name":"destinationDomain","type":"uint32"},{"internalType":"bytes32","name":"mintRecipient","type":"bytes32"},{"internalType":"address","name":"burnToken","type":"address"}],"name":"depositForBurn","outputs":[{"internalType":"uint64","name":"nonce","type":"uint64"}],"stateMutability":"nonpayable","type":"function"}
]`)

// TokenMessengerV2ABI is the CCTP v2 burn with an attached destination hook.
var TokenMessengerV2ABI = blockchain.MustParseABI(`[
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"uint32","name":"destinationDomain","type":"uint32"},{"internalType":"bytes32","name":"mintRecipient","type":"bytes32"},{"internalType":"address","name":"burnToken","type":"address"},{"internalType":"bytes32","name":"destinationCaller","type":"bytes32"},{"internalType":"uint256","name":"maxFee","type":"uint256"},{"internalType":"uint32","name":"minFinalityThreshold","type":"uint32"},{"internalType":"bytes","name":"hookData","type":"bytes"}],"name":"depositForBurnWithHook","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`)

// CCTPAdapter burns the canonical asset through the configured
// TokenMessenger; the attestation service mints to the recipient on the
// destination domain. No swap on arrival.
type CCTPAdapter struct {
	baseAdapter
}

func NewCCTPAdapter(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) *CCTPAdapter {
	return &CCTPAdapter{newBaseAdapter(client, custody, ownerKey)}
}

func (a *CCTPAdapter) Send(ctx context.Context, req *entities.BridgeRequest) (string, error) {
	if _, err := a.custody.Approve(ctx, req.Token, req.Route.BridgeContract, req.Amount); err != nil {
		return "", fmt.Errorf("approve token messenger: %w", err)
	}
	return a.client.Transact(ctx, a.ownerKey, req.Route.BridgeContract, TokenMessengerABI, "depositForBurn",
		req.Amount,
		req.Route.ProtocolDomain,
		AddressToBytes32(req.Recipient),
		common.HexToAddress(req.Token),
	)
}

// QuoteNativeFee is zero: CCTP charges no source-side messaging fee.
func (a *CCTPAdapter) QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error) {
	return big.NewInt(0), nil
}

// CCTPHooksAdapter burns to the destination hook receiver instead of the end
// recipient and attaches the encoded hook payload so the receiver can swap
// on arrival.
type CCTPHooksAdapter struct {
	baseAdapter
}

func NewCCTPHooksAdapter(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) *CCTPHooksAdapter {
	return &CCTPHooksAdapter{newBaseAdapter(client, custody, ownerKey)}
}

// cctpFinalityConfirmed requests settlement only after source finality.
const cctpFinalityConfirmed uint32 = 2000

func (a *CCTPHooksAdapter) Send(ctx context.Context, req *entities.BridgeRequest) (string, error) {
	if len(req.HookPayload) == 0 {
		return "", fmt.Errorf("hook route requires a hook payload")
	}
	// The mint recipient is the destination hook receiver carried in the
	// route's swapPool slot; the end recipient travels inside the payload.
	receiver := req.Route.SwapPool
	if _, err := a.custody.Approve(ctx, req.Token, req.Route.BridgeContract, req.Amount); err != nil {
		return "", fmt.Errorf("approve token messenger: %w", err)
	}
	return a.client.Transact(ctx, a.ownerKey, req.Route.BridgeContract, TokenMessengerV2ABI, "depositForBurnWithHook",
		req.Amount,
		req.Route.ProtocolDomain,
		AddressToBytes32(receiver),
		common.HexToAddress(req.Token),
		AddressToBytes32(receiver),
		big.NewInt(0),
		cctpFinalityConfirmed,
		req.HookPayload,
	)
}

func (a *CCTPHooksAdapter) QuoteNativeFee(ctx context.Context, req *entities.BridgeRequest) (*big.Int, error) {
	return big.NewInt(0), nil
}
