package blockchain

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	dialEVMClient    = ethclient.Dial
	getClientChainID = func(client *ethclient.Client, ctx context.Context) (*big.Int, error) {
		return client.ChainID(ctx)
	}
	performContractTransact = func(client *ethclient.Client, contractAddress string, parsedABI abi.ABI, auth *bind.TransactOpts, method string, args ...interface{}) (string, error) {
		contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsedABI, client, client, client)
		tx, err := contract.Transact(auth, method, args...)
		if err != nil {
			return "", err
		}
		return tx.Hash().Hex(), nil
	}
)

// EVMClient provides EVM blockchain interaction
type EVMClient struct {
	client  *ethclient.Client
	chainID *big.Int
	rpcURL  string
	// testCallView / testTransact allow deterministic unit tests without
	// network sockets.
	testCallView func(ctx context.Context, to string, data []byte) ([]byte, error)
	testTransact func(ctx context.Context, to string, method string, args []interface{}) (string, error)
}

// NewEVMClient creates a new EVM client
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := getClientChainID(client, context.Background())
	if err != nil {
		return nil, err
	}

	return &EVMClient{
		client:  client,
		chainID: chainID,
		rpcURL:  rpcURL,
	}, nil
}

// NewEVMClientWithHooks creates an EVM client that uses injected call and
// transact implementations. Intended for unit tests.
func NewEVMClientWithHooks(
	chainID *big.Int,
	callViewFn func(ctx context.Context, to string, data []byte) ([]byte, error),
	transactFn func(ctx context.Context, to string, method string, args []interface{}) (string, error),
) *EVMClient {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &EVMClient{
		chainID:      chainID,
		testCallView: callViewFn,
		testTransact: transactFn,
	}
}

// ChainID returns the chain ID
func (c *EVMClient) ChainID() *big.Int {
	return c.chainID
}

// GetBalance gets the native token balance of an address
func (c *EVMClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	addr := common.HexToAddress(address)
	return c.client.BalanceAt(ctx, addr, nil)
}

// GetBlockNumber gets the latest block number
func (c *EVMClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

// GetTransactionReceipt gets transaction receipt
func (c *EVMClient) GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	hash := common.HexToHash(txHash)
	return c.client.TransactionReceipt(ctx, hash)
}

// CallView executes a read-only contract call
func (c *EVMClient) CallView(ctx context.Context, to string, data []byte) ([]byte, error) {
	if c.testCallView != nil {
		return c.testCallView(ctx, to, data)
	}
	addr := common.HexToAddress(to)
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	return c.client.CallContract(ctx, msg, nil)
}

// Transact signs and submits a state-changing contract call with the given
// key and returns the transaction hash.
func (c *EVMClient) Transact(ctx context.Context, privateKeyHex, to string, parsedABI abi.ABI, method string, args ...interface{}) (string, error) {
	return c.TransactWithValue(ctx, privateKeyHex, to, parsedABI, nil, method, args...)
}

// TransactWithValue is Transact with an attached native value, used for
// bridge calls that charge a messaging fee.
func (c *EVMClient) TransactWithValue(ctx context.Context, privateKeyHex, to string, parsedABI abi.ABI, value *big.Int, method string, args ...interface{}) (string, error) {
	if c.testTransact != nil {
		return c.testTransact(ctx, to, method, args)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, c.chainID)
	if err != nil {
		return "", err
	}
	auth.Context = ctx
	auth.Value = value

	return performContractTransact(c.client, to, parsedABI, auth, method, args...)
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
