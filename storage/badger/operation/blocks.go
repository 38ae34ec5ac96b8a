package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/quiltchain/quilt-go/model/quilt"
)

// InsertBlock inserts the block, keyed by its ID.
// Returns storage.ErrAlreadyExists if the block was stored before.
func InsertBlock(block *quilt.Block) func(*badger.Txn) error {
	return insert(makePrefix(codeBlock, block.ID()), block)
}

// RetrieveBlock retrieves the block with the given ID.
// Returns storage.ErrNotFound if the block is unknown.
func RetrieveBlock(blockID quilt.Identifier, block *quilt.Block) func(*badger.Txn) error {
	return retrieve(makePrefix(codeBlock, blockID), block)
}

// BlockExists checks whether the block with the given ID is stored.
func BlockExists(blockID quilt.Identifier, result *bool) func(*badger.Txn) error {
	return exists(makePrefix(codeBlock, blockID), result)
}

// UpsertBlockStatus sets the chain status of the given block.
func UpsertBlockStatus(blockID quilt.Identifier, status quilt.BlockStatus) func(*badger.Txn) error {
	return upsert(makePrefix(codeBlockStatus, blockID), status)
}

// RetrieveBlockStatus retrieves the chain status of the given block.
// Returns storage.ErrNotFound if no status was ever set for the block.
func RetrieveBlockStatus(blockID quilt.Identifier, status *quilt.BlockStatus) func(*badger.Txn) error {
	return retrieve(makePrefix(codeBlockStatus, blockID), status)
}

// IndexBlockHeight indexes the ID of the committed block at the given
// height. Only committed blocks may be indexed, as conflicting forks can
// hold multiple blocks at the same height.
func IndexBlockHeight(height uint64, blockID quilt.Identifier) func(*badger.Txn) error {
	return insert(makePrefix(codeHeightToBlock, height), blockID)
}

// LookupBlockHeight looks up the ID of the committed block at the given
// height.
func LookupBlockHeight(height uint64, blockID *quilt.Identifier) func(*badger.Txn) error {
	return retrieve(makePrefix(codeHeightToBlock, height), blockID)
}

// UpsertCommittedBlock sets the ID of the latest committed block, the
// boundary the chain grows from.
func UpsertCommittedBlock(blockID quilt.Identifier) func(*badger.Txn) error {
	return upsert(makePrefix(codeCommittedBlock), blockID)
}

// RetrieveCommittedBlock retrieves the ID of the latest committed block.
// Returns storage.ErrNotFound on an unbootstrapped store.
func RetrieveCommittedBlock(blockID *quilt.Identifier) func(*badger.Txn) error {
	return retrieve(makePrefix(codeCommittedBlock), blockID)
}
