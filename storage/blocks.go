package storage

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Blocks represents persistent storage for blocks. Whether a block is
// justified or committed is chain state derived as consensus advances; it
// is tracked here, never on the block itself.
type Blocks interface {

	// Store stores the block. Storing a block that is already present is
	// a no-op; blocks are content-addressed, so a repeated store can never
	// change the stored data.
	Store(block *quilt.Block) error

	// ByID returns the block with the given ID. It is available for all
	// stored blocks, committed or not.
	// Returns ErrNotFound if the block is unknown.
	ByID(blockID quilt.Identifier) (*quilt.Block, error)

	// ByHeight returns the block at the given height. It is only
	// available for committed blocks, as conflicting forks can hold
	// multiple blocks at the same height.
	// Returns ErrNotFound if no committed block exists at the height.
	ByHeight(height uint64) (*quilt.Block, error)

	// Status returns the chain status of the given block.
	// Returns ErrNotFound if the block is unknown.
	Status(blockID quilt.Identifier) (quilt.BlockStatus, error)

	// MarkJustified marks the block as certified by a quorum certificate.
	// Idempotent; a committed block stays committed.
	// Returns ErrNotFound if the block is unknown.
	MarkJustified(blockID quilt.Identifier) error

	// MarkCommitted marks the block as committed, indexes it by height
	// and advances the committed boundary. Blocks must be committed in
	// ascending height order; marking an already committed block is a
	// no-op.
	// Returns ErrNotFound if the block is unknown.
	MarkCommitted(blockID quilt.Identifier) error

	// Committed returns the latest committed block (the boundary the
	// chain grows from).
	// Returns ErrNotFound on an unbootstrapped store.
	Committed() (*quilt.Block, error)
}
