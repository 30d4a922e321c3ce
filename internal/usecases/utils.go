package usecases

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// RouteKeyOf derives the canonical route key for an ordered
// (source token, source chain, dest token, dest chain) tuple. The key is the
// keccak256 of the ABI encoding of the tuple, so A->B and B->A never collide.
func RouteKeyOf(sourceToken string, sourceChainID uint64, destToken string, destChainID uint64) string {
	buf := make([]byte, 0, 4*32)
	buf = append(buf, common.LeftPadBytes(common.HexToAddress(sourceToken).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(new(big.Int).SetUint64(sourceChainID).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(common.HexToAddress(destToken).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(new(big.Int).SetUint64(destChainID).Bytes(), 32)...)
	return hexutil.Encode(crypto.Keccak256(buf))
}

// DeriveTransferID builds a transfer's public identifier from the caller and
// their per-caller nonce. Deterministic, collision-free across callers.
func DeriveTransferID(caller string, nonce uint64) string {
	buf := make([]byte, 0, 28)
	buf = append(buf, common.HexToAddress(caller).Bytes()...)
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	buf = append(buf, n[:]...)
	return hexutil.Encode(crypto.Keccak256(buf))
}

// CalculateFee applies a basis point rate with floor rounding.
func CalculateFee(amount *big.Int, basisPoints uint32) *big.Int {
	fee := new(big.Int).Mul(amount, big.NewInt(int64(basisPoints)))
	return fee.Div(fee, big.NewInt(BpsDenominator))
}
