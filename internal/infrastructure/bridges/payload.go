package bridges

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/pkg/utils"
)

// Hook payloads cross the wire as
// abi.encode(address recipient, address bridgedToken, uint256 bridgedAmount,
// address targetToken, uint256 minAmountOut). The typed struct exists on
// both sides of the boundary; raw bytes never travel further than this file.
var hookPayloadArgs = abi.Arguments{
	{Name: "recipient", Type: mustNewType("address")},
	{Name: "bridgedToken", Type: mustNewType("address")},
	{Name: "bridgedAmount", Type: mustNewType("uint256")},
	{Name: "targetToken", Type: mustNewType("address")},
	{Name: "minAmountOut", Type: mustNewType("uint256")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeHookPayload packs a hook payload for the wire.
func EncodeHookPayload(p *entities.HookPayload) ([]byte, error) {
	if p.BridgedAmount == nil || p.MinAmountOut == nil {
		return nil, fmt.Errorf("hook payload amounts must be set")
	}
	return hookPayloadArgs.Pack(
		common.HexToAddress(p.Recipient),
		common.HexToAddress(p.BridgedToken),
		p.BridgedAmount,
		common.HexToAddress(p.TargetToken),
		p.MinAmountOut,
	)
}

// DecodeHookPayload unpacks wire bytes into the typed payload.
func DecodeHookPayload(data []byte) (*entities.HookPayload, error) {
	values, err := hookPayloadArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("malformed hook payload: %w", err)
	}
	if len(values) != 5 {
		return nil, fmt.Errorf("malformed hook payload: %d fields", len(values))
	}

	recipient, ok0 := values[0].(common.Address)
	bridgedToken, ok1 := values[1].(common.Address)
	bridgedAmount, ok2 := values[2].(*big.Int)
	targetToken, ok3 := values[3].(common.Address)
	minAmountOut, ok4 := values[4].(*big.Int)
	if !ok0 || !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("malformed hook payload: field types")
	}

	return &entities.HookPayload{
		Recipient:     utils.NormalizeAddress(recipient.Hex()),
		BridgedToken:  utils.NormalizeAddress(bridgedToken.Hex()),
		BridgedAmount: bridgedAmount,
		TargetToken:   utils.NormalizeAddress(targetToken.Hex()),
		MinAmountOut:  minAmountOut,
	}, nil
}
