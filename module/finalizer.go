package module

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Finalizer is used by the consensus core to signal that a block has been
// committed. The implementation marks the block and its ancestry committed
// in the block store and hands the payload to the execution side.
// Finalization is irrevocable.
type Finalizer interface {

	// MakeFinal commits the block with the given ID and all of its
	// uncommitted ancestors. Committed blocks are reported in ascending
	// height order, exactly once each. If the block is unknown, an error
	// is returned.
	MakeFinal(blockID quilt.Identifier) error
}
