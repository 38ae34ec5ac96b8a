// Package finalizer applies consensus finalization to the block store and
// hands committed payloads to the execution side.
package finalizer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
	"github.com/quiltchain/quilt-go/module/mempool"
	"github.com/quiltchain/quilt-go/storage"
)

// Finalizer implements module.Finalizer. Committing a block marks it and
// its uncommitted ancestors committed in the block store, removes their
// commands from the mempool and applies them in ascending height order.
type Finalizer struct {
	log      zerolog.Logger
	blocks   storage.Blocks
	pool     mempool.Commands
	receiver module.ApplyReceiver
}

var _ module.Finalizer = (*Finalizer)(nil)

func New(log zerolog.Logger, blocks storage.Blocks, pool mempool.Commands, receiver module.ApplyReceiver) *Finalizer {
	f := &Finalizer{
		log:      log.With().Str("component", "finalizer").Logger(),
		blocks:   blocks,
		pool:     pool,
		receiver: receiver,
	}
	return f
}

// MakeFinal commits the block with the given ID and all of its
// uncommitted ancestors. Finalization is irrevocable; an already
// committed block is a no-op.
func (f *Finalizer) MakeFinal(blockID quilt.Identifier) error {

	// walk up the ancestry until we hit the committed part of the chain
	var pending []*quilt.Block
	for currentID := blockID; ; {
		status, err := f.blocks.Status(currentID)
		if err != nil {
			return fmt.Errorf("could not check status of block %x: %w", currentID, err)
		}
		if status == quilt.BlockStatusCommitted {
			break
		}
		block, err := f.blocks.ByID(currentID)
		if err != nil {
			return fmt.Errorf("could not retrieve block %x: %w", currentID, err)
		}
		pending = append(pending, block)
		currentID = block.Header.ParentID
	}

	// commit ancestors first, so application sees ascending heights
	for i := len(pending) - 1; i >= 0; i-- {
		block := pending[i]
		err := f.commit(block)
		if err != nil {
			return fmt.Errorf("could not commit block %x: %w", block.ID(), err)
		}
	}

	return nil
}

func (f *Finalizer) commit(block *quilt.Block) error {
	blockID := block.ID()

	err := f.blocks.MarkCommitted(blockID)
	if err != nil {
		return fmt.Errorf("could not mark block committed: %w", err)
	}

	for _, cmd := range block.Payload.Commands {
		f.pool.Rem(cmd.ID())
	}

	err = f.receiver.ApplyBlock(block)
	if err != nil {
		return fmt.Errorf("could not apply block payload: %w", err)
	}

	f.log.Info().
		Uint64("height", block.Header.Height).
		Uint64("view", block.Header.View).
		Hex("block_id", blockID[:]).
		Int("commands", len(block.Payload.Commands)).
		Msg("block committed")

	return nil
}
