package module

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// ApplyReceiver is the consensus core's hand-off to the execution side.
// Committed blocks are delivered in ascending height order, exactly once
// each; the receiver applies their payloads to the shard state.
type ApplyReceiver interface {

	// ApplyBlock applies the payload of the committed block. An error
	// aborts finalization and is fatal to the node.
	ApplyBlock(block *quilt.Block) error
}
