package module

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Local encapsulates the stable local node information, including its
// identifier and staking key. The key never leaves this interface; other
// components request signatures instead of key material.
type Local interface {

	// NodeID returns the node ID of the local node.
	NodeID() quilt.Identifier

	// Sign signs the given message with the node's staking key.
	Sign(msg []byte) ([]byte, error)

	// PublicKey returns the serialized public staking key of the local
	// node, as registered with the committee.
	PublicKey() []byte
}
