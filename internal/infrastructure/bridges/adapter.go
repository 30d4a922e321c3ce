package bridges

import (
	"github.com/ethereum/go-ethereum/common"
	"stable-route.backend/internal/infrastructure/blockchain"
)

// baseAdapter carries what every protocol adapter needs: the local chain
// client, the signing key and the custody address funds are staged in.
type baseAdapter struct {
	client   *blockchain.EVMClient
	custody  *blockchain.ERC20Custody
	ownerKey string
}

func newBaseAdapter(client *blockchain.EVMClient, custody *blockchain.ERC20Custody, ownerKey string) baseAdapter {
	return baseAdapter{
		client:   client,
		custody:  custody,
		ownerKey: ownerKey,
	}
}

// AddressToBytes32 left-pads an EVM address into the 32-byte identity form
// bridge messengers expect for mint recipients.
func AddressToBytes32(address string) [32]byte {
	var out [32]byte
	addr := common.HexToAddress(address)
	copy(out[12:], addr.Bytes())
	return out
}
