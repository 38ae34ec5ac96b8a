package builder

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
	"github.com/quiltchain/quilt-go/module/mempool/stdmap"
	bstorage "github.com/quiltchain/quilt-go/storage/badger"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

func runWithBuilder(t *testing.T, options []Option, f func(*Builder, *stdmap.Commands, *quilt.Block)) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		blocks := bstorage.NewBlocks(db)
		genesis := quilt.Genesis("test-shard")
		require.NoError(t, blocks.Store(genesis))
		require.NoError(t, blocks.MarkCommitted(genesis.ID()))

		pool := stdmap.NewCommands(100)
		f(New(blocks, pool, options...), pool, genesis)
	})
}

func TestBuilderBuildOn(t *testing.T) {
	runWithBuilder(t, nil, func(b *Builder, pool *stdmap.Commands, genesis *quilt.Block) {
		cmds := make([]quilt.Command, 0, 3)
		for i := 0; i < 3; i++ {
			cmd := unittest.CommandFixture()
			cmds = append(cmds, cmd)
			require.True(t, pool.Add(cmd))
		}

		qc := quilt.GenesisQC(genesis.ID())
		block, err := b.BuildOn(qc, func(header *quilt.Header) error {
			header.View = 1
			header.Epoch = 1
			header.ProposerID = unittest.IdentifierFixture()
			return nil
		})
		require.NoError(t, err)

		require.Equal(t, genesis.ID(), block.Header.ParentID)
		require.Equal(t, genesis.Header.Height+1, block.Header.Height)
		require.Equal(t, uint64(1), block.Header.View)
		require.Equal(t, genesis.Header.ShardID, block.Header.ShardID)
		require.Equal(t, qc, block.Justify)
		require.True(t, block.Valid())
		require.Len(t, block.Payload.Commands, 3)
		for i, cmd := range block.Payload.Commands {
			require.Equal(t, cmds[i].ID(), cmd.ID())
		}

		// commands stay pooled until a block carrying them commits
		require.Equal(t, uint(3), pool.Size())

		// the built block must be retrievable for vote processing
		stored, err := b.blocks.ByID(block.ID())
		require.NoError(t, err)
		require.Equal(t, block.ID(), stored.ID())
	})
}

func TestBuilderPayloadBounded(t *testing.T) {
	runWithBuilder(t, []Option{WithMaxPayloadSize(2)}, func(b *Builder, pool *stdmap.Commands, genesis *quilt.Block) {
		for i := 0; i < 5; i++ {
			require.True(t, pool.Add(unittest.CommandFixture()))
		}
		block, err := b.BuildOn(quilt.GenesisQC(genesis.ID()), func(*quilt.Header) error { return nil })
		require.NoError(t, err)
		require.Len(t, block.Payload.Commands, 2)
	})
}

func TestBuilderEmptyBlocks(t *testing.T) {
	runWithBuilder(t, nil, func(b *Builder, pool *stdmap.Commands, genesis *quilt.Block) {
		block, err := b.BuildOn(quilt.GenesisQC(genesis.ID()), func(*quilt.Header) error { return nil })
		require.NoError(t, err)
		require.Empty(t, block.Payload.Commands)
		require.True(t, block.Valid())
	})

	runWithBuilder(t, []Option{WithEmptyBlocksDisabled()}, func(b *Builder, pool *stdmap.Commands, genesis *quilt.Block) {
		_, err := b.BuildOn(quilt.GenesisQC(genesis.ID()), func(*quilt.Header) error { return nil })
		require.ErrorIs(t, err, module.ErrNoCommands)
	})
}

func TestBuilderUnknownParent(t *testing.T) {
	runWithBuilder(t, nil, func(b *Builder, pool *stdmap.Commands, genesis *quilt.Block) {
		_, err := b.BuildOn(unittest.QuorumCertificateFixture(), func(*quilt.Header) error { return nil })
		require.Error(t, err)
	})
}
