package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/storage"
	"github.com/quiltchain/quilt-go/storage/badger/operation"
)

// Blocks implements storage.Blocks around a badger DB. Blocks are stored
// by ID; the justified/committed chain status lives in a separate keyspace
// and is mutated only as consensus advances.
type Blocks struct {
	db *badger.DB
}

var _ storage.Blocks = (*Blocks)(nil)

func NewBlocks(db *badger.DB) *Blocks {
	b := &Blocks{
		db: db,
	}
	return b
}

// Store stores the block with status proposed. Storing a known block is a
// no-op; blocks are content-addressed, so the stored data cannot change.
func (b *Blocks) Store(block *quilt.Block) error {
	blockID := block.ID()
	return b.db.Update(func(tx *badger.Txn) error {
		var known bool
		err := operation.BlockExists(blockID, &known)(tx)
		if err != nil {
			return fmt.Errorf("could not check block: %w", err)
		}
		if known {
			return nil
		}
		err = operation.InsertBlock(block)(tx)
		if err != nil {
			return fmt.Errorf("could not insert block: %w", err)
		}
		err = operation.UpsertBlockStatus(blockID, quilt.BlockStatusProposed)(tx)
		if err != nil {
			return fmt.Errorf("could not set block status: %w", err)
		}
		return nil
	})
}

func (b *Blocks) ByID(blockID quilt.Identifier) (*quilt.Block, error) {
	var block quilt.Block
	err := b.db.View(operation.RetrieveBlock(blockID, &block))
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (b *Blocks) ByHeight(height uint64) (*quilt.Block, error) {
	var block quilt.Block
	err := b.db.View(func(tx *badger.Txn) error {
		var blockID quilt.Identifier
		err := operation.LookupBlockHeight(height, &blockID)(tx)
		if err != nil {
			return fmt.Errorf("could not look up height: %w", err)
		}
		err = operation.RetrieveBlock(blockID, &block)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve block: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (b *Blocks) Status(blockID quilt.Identifier) (quilt.BlockStatus, error) {
	var status quilt.BlockStatus
	err := b.db.View(operation.RetrieveBlockStatus(blockID, &status))
	if err != nil {
		return quilt.BlockStatusUnknown, err
	}
	return status, nil
}

// MarkJustified marks the block as certified by a QC. The status never
// regresses: a committed block stays committed.
func (b *Blocks) MarkJustified(blockID quilt.Identifier) error {
	return b.db.Update(func(tx *badger.Txn) error {
		var status quilt.BlockStatus
		err := operation.RetrieveBlockStatus(blockID, &status)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve block status: %w", err)
		}
		if status >= quilt.BlockStatusJustified {
			return nil
		}
		return operation.UpsertBlockStatus(blockID, quilt.BlockStatusJustified)(tx)
	})
}

// MarkCommitted marks the block as committed, indexes it by height and
// advances the committed boundary. Blocks must be committed in ascending
// height order.
func (b *Blocks) MarkCommitted(blockID quilt.Identifier) error {
	return b.db.Update(func(tx *badger.Txn) error {
		var status quilt.BlockStatus
		err := operation.RetrieveBlockStatus(blockID, &status)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve block status: %w", err)
		}
		if status == quilt.BlockStatusCommitted {
			return nil
		}
		var block quilt.Block
		err = operation.RetrieveBlock(blockID, &block)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve block: %w", err)
		}
		err = operation.UpsertBlockStatus(blockID, quilt.BlockStatusCommitted)(tx)
		if err != nil {
			return fmt.Errorf("could not set block status: %w", err)
		}
		err = operation.IndexBlockHeight(block.Header.Height, blockID)(tx)
		if err != nil {
			return fmt.Errorf("could not index block height: %w", err)
		}
		err = operation.UpsertCommittedBlock(blockID)(tx)
		if err != nil {
			return fmt.Errorf("could not move committed boundary: %w", err)
		}
		return nil
	})
}

func (b *Blocks) Committed() (*quilt.Block, error) {
	var block quilt.Block
	err := b.db.View(func(tx *badger.Txn) error {
		var blockID quilt.Identifier
		err := operation.RetrieveCommittedBlock(&blockID)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve committed boundary: %w", err)
		}
		err = operation.RetrieveBlock(blockID, &block)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve block: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}
