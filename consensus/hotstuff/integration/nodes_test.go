package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/consensus"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/committees"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module/local"
	"github.com/quiltchain/quilt-go/module/mempool/stdmap"
	"github.com/quiltchain/quilt-go/network/mocknet"
	bstorage "github.com/quiltchain/quilt-go/storage/badger"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

const shardID = quilt.ShardID("shard-integration")

// Node bundles one participant with the components a test observes.
type Node struct {
	ID          quilt.Identifier
	Blocks      *bstorage.Blocks
	Pool        *stdmap.Commands
	Applied     *AppliedLedger
	Participant *consensus.Participant
}

// AppliedLedger records the blocks handed over for execution, in commit
// order. It stands in for the execution side of the validator.
type AppliedLedger struct {
	mu     sync.Mutex
	blocks []*quilt.Block
}

func (l *AppliedLedger) ApplyBlock(block *quilt.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blocks = append(l.blocks, block)
	return nil
}

// Height returns the height of the latest applied block.
func (l *AppliedLedger) Height() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.blocks) == 0 {
		return 0
	}
	return l.blocks[len(l.blocks)-1].Header.Height
}

// BlockAt returns the applied block at the given height, or nil.
func (l *AppliedLedger) BlockAt(height uint64) *quilt.Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, block := range l.blocks {
		if block.Header.Height == height {
			return block
		}
	}
	return nil
}

// Heights returns the heights of all applied blocks, in apply order.
func (l *AppliedLedger) Heights() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	heights := make([]uint64, 0, len(l.blocks))
	for _, block := range l.blocks {
		heights = append(heights, block.Header.Height)
	}
	return heights
}

// createNodes builds a committee of n fully wired participants connected
// through the given bus. Every node runs on its own badger database.
func createNodes(t *testing.T, net *mocknet.Network, n int, options ...consensus.Option) []*Node {
	identities := unittest.IdentityListFixture(n)

	nodes := make([]*Node, 0, n)
	for _, identity := range identities {
		db := unittest.BadgerDB(t, t.TempDir())
		blocks := bstorage.NewBlocks(db)
		_, err := consensus.Bootstrap(blocks, shardID)
		require.NoError(t, err)

		me, err := local.New(identity.NodeID, unittest.PrivateKeyFixture(identity.NodeID))
		require.NoError(t, err)
		committee, err := committees.NewStatic(1, identity.NodeID, identities)
		require.NoError(t, err)

		pool := stdmap.NewCommands(1000)
		applied := &AppliedLedger{}

		participant, err := consensus.NewParticipant(
			unittest.Logger().With().Str("node_id", identity.NodeID.String()[:8]).Logger(),
			db,
			me,
			committee,
			blocks,
			pool,
			applied,
			net,
			options...,
		)
		require.NoError(t, err)

		nodes = append(nodes, &Node{
			ID:          identity.NodeID,
			Blocks:      blocks,
			Pool:        pool,
			Applied:     applied,
			Participant: participant,
		})
	}
	return nodes
}

// startNodes starts all participants and waits until each has entered its
// first view.
func startNodes(t *testing.T, nodes []*Node) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	for _, node := range nodes {
		node.Participant.Start(ctx)
	}
	for _, node := range nodes {
		select {
		case <-node.Participant.Ready():
		case <-time.After(5 * time.Second):
			t.Fatal("node did not become ready")
		}
	}
}

// seedCommands fills every node's mempool with pending commands, so that
// leaders have something to propose.
func seedCommands(t *testing.T, nodes []*Node, n int) {
	for _, node := range nodes {
		for i := 0; i < n; i++ {
			node.Pool.Add(unittest.CommandFixture())
		}
	}
}

// waitForHeight blocks until every given node has applied a block at the
// target height.
func waitForHeight(t *testing.T, nodes []*Node, height uint64, timeout time.Duration) {
	require.Eventuallyf(t, func() bool {
		for _, node := range nodes {
			if node.Applied.Height() < height {
				return false
			}
		}
		return true
	}, timeout, 100*time.Millisecond, "nodes did not commit up to height %d", height)
}

// assertSameChain verifies that all nodes committed identical blocks up to
// the given height.
func assertSameChain(t *testing.T, nodes []*Node, height uint64) {
	reference := nodes[0]
	for h := uint64(1); h <= height; h++ {
		expected := reference.Applied.BlockAt(h)
		require.NotNilf(t, expected, "reference node has no block at height %d", h)
		for _, node := range nodes[1:] {
			actual := node.Applied.BlockAt(h)
			require.NotNilf(t, actual, "node %s has no block at height %d", node.ID, h)
			require.Equalf(t, expected.ID(), actual.ID(), "conflicting blocks committed at height %d", h)
		}
	}
}

// assertAscendingCommits verifies that a node applied blocks in strictly
// ascending height order.
func assertAscendingCommits(t *testing.T, node *Node) {
	heights := node.Applied.Heights()
	for i := 1; i < len(heights); i++ {
		require.Equalf(t, heights[i-1]+1, heights[i], "node %s applied heights out of order: %v", node.ID, heights)
	}
}
