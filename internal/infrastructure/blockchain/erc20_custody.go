package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ERC20ABI covers the calls the custody layer needs.
var ERC20ABI = MustParseABI(`[
	{"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"spender","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"approve","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`)

// MustParseABI parses a JSON ABI or panics. Only used on package literals.
func MustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// ERC20Custody moves tokens between the caller, the custody address and
// final recipients through allowance-style pulls.
type ERC20Custody struct {
	client         *EVMClient
	custodyAddress string
	ownerKey       string
}

// NewERC20Custody creates the EVM-backed custody layer.
func NewERC20Custody(client *EVMClient, custodyAddress, ownerKey string) *ERC20Custody {
	return &ERC20Custody{
		client:         client,
		custodyAddress: custodyAddress,
		ownerKey:       ownerKey,
	}
}

// Address returns the custody address funds are pulled into.
func (c *ERC20Custody) Address() string {
	return c.custodyAddress
}

// Balance returns owner's balance of token.
func (c *ERC20Custody) Balance(ctx context.Context, token, owner string) (*big.Int, error) {
	data, err := ERC20ABI.Pack("balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	out, err := c.client.CallView(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}
	return new(big.Int).SetBytes(out), nil
}

// Allowance returns how much of token the owner has approved to custody.
func (c *ERC20Custody) Allowance(ctx context.Context, token, owner string) (*big.Int, error) {
	data, err := ERC20ABI.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(c.custodyAddress))
	if err != nil {
		return nil, err
	}
	out, err := c.client.CallView(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("allowance call failed: %w", err)
	}
	return new(big.Int).SetBytes(out), nil
}

// Pull moves amount of token from the caller into custody.
func (c *ERC20Custody) Pull(ctx context.Context, token, from string, amount *big.Int) (string, error) {
	return c.client.Transact(ctx, c.ownerKey, token, ERC20ABI, "transferFrom",
		common.HexToAddress(from), common.HexToAddress(c.custodyAddress), amount)
}

// Release moves amount of token out of custody to the recipient.
func (c *ERC20Custody) Release(ctx context.Context, token, to string, amount *big.Int) (string, error) {
	return c.client.Transact(ctx, c.ownerKey, token, ERC20ABI, "transfer",
		common.HexToAddress(to), amount)
}

// Approve lets a bridge contract spend custody funds before an outbound call.
func (c *ERC20Custody) Approve(ctx context.Context, token, spender string, amount *big.Int) (string, error) {
	return c.client.Transact(ctx, c.ownerKey, token, ERC20ABI, "approve",
		common.HexToAddress(spender), amount)
}
