package finalizer

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module/mempool/stdmap"
	"github.com/quiltchain/quilt-go/module/mocks"
	bstorage "github.com/quiltchain/quilt-go/storage/badger"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

type finalizerFixture struct {
	blocks    *bstorage.Blocks
	pool      *stdmap.Commands
	receiver  *mocks.ApplyReceiver
	finalizer *Finalizer
	genesis   *quilt.Block
	applied   []quilt.Identifier
}

func runWithFinalizer(t *testing.T, f func(*finalizerFixture)) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		fixture := &finalizerFixture{
			blocks:  bstorage.NewBlocks(db),
			pool:    stdmap.NewCommands(100),
			genesis: quilt.Genesis("test-shard"),
		}
		require.NoError(t, fixture.blocks.Store(fixture.genesis))
		require.NoError(t, fixture.blocks.MarkCommitted(fixture.genesis.ID()))

		fixture.receiver = mocks.NewApplyReceiver(t)
		fixture.receiver.On("ApplyBlock", mock.Anything).Run(func(args mock.Arguments) {
			fixture.applied = append(fixture.applied, args.Get(0).(*quilt.Block).ID())
		}).Return(nil).Maybe()

		fixture.finalizer = New(unittest.Logger(), fixture.blocks, fixture.pool, fixture.receiver)
		f(fixture)
	})
}

// storeChain stores n blocks extending genesis and returns them in
// ascending height order.
func (f *finalizerFixture) storeChain(t *testing.T, n int) []*quilt.Block {
	chain := make([]*quilt.Block, 0, n)
	parent := f.genesis.Header
	for i := 0; i < n; i++ {
		block := unittest.BlockWithParentFixture(parent)
		require.NoError(t, f.blocks.Store(block))
		chain = append(chain, block)
		parent = block.Header
	}
	return chain
}

func TestFinalizerCommitsAncestry(t *testing.T) {
	runWithFinalizer(t, func(f *finalizerFixture) {
		chain := f.storeChain(t, 3)

		require.NoError(t, f.finalizer.MakeFinal(chain[2].ID()))

		// applied in ascending height order
		expected := []quilt.Identifier{chain[0].ID(), chain[1].ID(), chain[2].ID()}
		require.Equal(t, expected, f.applied)

		for _, block := range chain {
			status, err := f.blocks.Status(block.ID())
			require.NoError(t, err)
			require.Equal(t, quilt.BlockStatusCommitted, status)
		}
		committed, err := f.blocks.Committed()
		require.NoError(t, err)
		require.Equal(t, chain[2].ID(), committed.ID())
	})
}

func TestFinalizerAppliesExactlyOnce(t *testing.T) {
	runWithFinalizer(t, func(f *finalizerFixture) {
		chain := f.storeChain(t, 2)

		require.NoError(t, f.finalizer.MakeFinal(chain[0].ID()))
		require.NoError(t, f.finalizer.MakeFinal(chain[1].ID()))
		require.NoError(t, f.finalizer.MakeFinal(chain[1].ID()))

		expected := []quilt.Identifier{chain[0].ID(), chain[1].ID()}
		require.Equal(t, expected, f.applied)
	})
}

func TestFinalizerPrunesMempool(t *testing.T) {
	runWithFinalizer(t, func(f *finalizerFixture) {
		block := unittest.BlockWithParentFixture(f.genesis.Header)
		for _, cmd := range block.Payload.Commands {
			require.True(t, f.pool.Add(cmd))
		}
		straggler := unittest.CommandFixture()
		require.True(t, f.pool.Add(straggler))
		require.NoError(t, f.blocks.Store(block))

		require.NoError(t, f.finalizer.MakeFinal(block.ID()))

		require.Equal(t, uint(1), f.pool.Size())
		require.True(t, f.pool.Has(straggler.ID()))
	})
}

func TestFinalizerUnknownBlock(t *testing.T) {
	runWithFinalizer(t, func(f *finalizerFixture) {
		require.Error(t, f.finalizer.MakeFinal(unittest.IdentifierFixture()))
	})
}
