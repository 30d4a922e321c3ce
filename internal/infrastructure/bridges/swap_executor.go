package bridges

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	domainErrors "stable-route.backend/internal/domain/errors"
	"stable-route.backend/internal/infrastructure/blockchain"
)

// SwapPoolABI is the single-hop stable pool interface routes point at.
var SwapPoolABI = blockchain.MustParseABI(`[
	{"inputs":[{"internalType":"address","name":"tokenIn","type":"address"},{"internalType":"address","name":"tokenOut","type":"address"},{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"uint256","name":"minAmountOut","type":"uint256"},{"internalType":"address","name":"recipient","type":"address"}],"name":"swap","outputs":[{"internalType":"uint256","name":"amountOut","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}
]`)

// SwapExecutor performs token conversion against a configured pool using
// custody funds. The output is simulated first so a pool quoting below the
// minimum fails before any state is touched.
type SwapExecutor struct {
	client   *blockchain.EVMClient
	custody  *blockchain.ERC20Custody
	ownerKey string
}

func NewSwapExecutor(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) *SwapExecutor {
	return &SwapExecutor{client: client, custody: custody, ownerKey: ownerKey}
}

// Swap converts amountIn of tokenIn into tokenOut through pool, delivering
// to recipient. Returns the simulated output amount and the transaction hash.
func (s *SwapExecutor) Swap(ctx context.Context, pool, tokenIn, tokenOut string, amountIn, minAmountOut *big.Int, recipient string) (*big.Int, string, error) {
	if pool == "" {
		return nil, "", fmt.Errorf("swap requested without a pool")
	}
	data, err := SwapPoolABI.Pack("swap",
		common.HexToAddress(tokenIn),
		common.HexToAddress(tokenOut),
		amountIn,
		minAmountOut,
		common.HexToAddress(recipient),
	)
	if err != nil {
		return nil, "", err
	}

	out, err := s.client.CallView(ctx, pool, data)
	if err != nil {
		return nil, "", domainErrors.ExternalCallFailure(fmt.Errorf("swap pool simulation: %w", err))
	}
	amountOut := new(big.Int).SetBytes(out)
	if amountOut.Cmp(minAmountOut) < 0 {
		return nil, "", fmt.Errorf("%w: pool quoted %s below minimum %s",
			domainErrors.ErrSlippageExceeded, amountOut, minAmountOut)
	}

	if _, err := s.custody.Approve(ctx, tokenIn, pool, amountIn); err != nil {
		return nil, "", fmt.Errorf("approve swap pool: %w", err)
	}
	txHash, err := s.client.Transact(ctx, s.ownerKey, pool, SwapPoolABI, "swap",
		common.HexToAddress(tokenIn),
		common.HexToAddress(tokenOut),
		amountIn,
		minAmountOut,
		common.HexToAddress(recipient),
	)
	if err != nil {
		return nil, "", domainErrors.ExternalCallFailure(fmt.Errorf("swap execution: %w", err))
	}
	return amountOut, txHash, nil
}
