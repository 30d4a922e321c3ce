package entities

import (
	"time"

	"github.com/google/uuid"
)

// Protocol identifies the bridging protocol a route is served by.
// The zero value means the route is unconfigured.
type Protocol uint8

const (
	ProtocolNone Protocol = iota
	ProtocolCCTP
	ProtocolCCTPHooks
	ProtocolLayerZero
	ProtocolStargate
)

func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "NONE"
	case ProtocolCCTP:
		return "CCTP"
	case ProtocolCCTPHooks:
		return "CCTP_HOOKS"
	case ProtocolLayerZero:
		return "LAYERZERO"
	case ProtocolStargate:
		return "STARGATE"
	}
	return "UNKNOWN"
}

// Valid reports whether p is a known protocol variant, including NONE.
func (p Protocol) Valid() bool {
	return p <= ProtocolStargate
}

// Route is a configured mapping from (source token, source chain, dest token,
// dest chain) to the bridging protocol and parameters used to serve it.
// Key is order-sensitive: A->B and B->A are distinct routes.
type Route struct {
	ID             uuid.UUID  `json:"id"`
	Key            string     `json:"key"`
	SourceToken    string     `json:"sourceToken"`
	SourceChainID  uint64     `json:"sourceChainId"`
	DestToken      string     `json:"destToken"`
	DestChainID    uint64     `json:"destChainId"`
	Protocol       Protocol   `json:"protocol"`
	ProtocolDomain uint32     `json:"protocolDomain"`
	BridgeContract string     `json:"bridgeContract"`
	PoolID         uint32     `json:"poolId"`
	SwapPool       string     `json:"swapPool"`
	ExtraData      string     `json:"extraData"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// Configured reports whether the route carries a live protocol binding.
func (r *Route) Configured() bool {
	return r != nil && r.Protocol != ProtocolNone
}

// RouteConfigInput is the admin payload for configuring a route.
type RouteConfigInput struct {
	SourceToken    string   `json:"sourceToken" binding:"required"`
	SourceChainID  uint64   `json:"sourceChainId" binding:"required"`
	DestToken      string   `json:"destToken" binding:"required"`
	DestChainID    uint64   `json:"destChainId" binding:"required"`
	Protocol       Protocol `json:"protocol"`
	ProtocolDomain uint32   `json:"protocolDomain"`
	BridgeContract string   `json:"bridgeContract"`
	PoolID         uint32   `json:"poolId"`
	SwapPool       string   `json:"swapPool"`
	ExtraData      string   `json:"extraData"`
}

// ProtocolContract is the canonical bridge contract registered per protocol
// on the local chain (TokenMessenger, MessageTransmitter, LZ endpoint, ...).
type ProtocolContract struct {
	ID        uuid.UUID `json:"id"`
	Protocol  Protocol  `json:"protocol"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
