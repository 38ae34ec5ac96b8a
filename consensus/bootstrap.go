package consensus

import (
	"errors"
	"fmt"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/storage"
)

// Bootstrap initializes the block store for the given shard: the genesis
// block is stored and committed, establishing the boundary the chain grows
// from. Bootstrapping an already initialized store is a no-op; the store
// must then belong to the same shard.
func Bootstrap(blocks storage.Blocks, shardID quilt.ShardID) (*quilt.Block, error) {

	committed, err := blocks.Committed()
	if err == nil {
		if committed.Header.ShardID != shardID {
			return nil, fmt.Errorf("store already bootstrapped for shard %s, expected %s", committed.Header.ShardID, shardID)
		}
		return committed, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("could not check committed boundary: %w", err)
	}

	genesis := quilt.Genesis(shardID)
	err = blocks.Store(genesis)
	if err != nil {
		return nil, fmt.Errorf("could not store genesis block: %w", err)
	}
	err = blocks.MarkCommitted(genesis.ID())
	if err != nil {
		return nil, fmt.Errorf("could not commit genesis block: %w", err)
	}
	return genesis, nil
}
