package entities

import "math/big"

// BridgeRequest is one outbound send handed to a bridge adapter after the
// route is resolved and the fee collected. Amount is the net amount.
type BridgeRequest struct {
	Route       *Route
	Token       string
	Amount      *big.Int
	Recipient   string
	HookPayload []byte
}
