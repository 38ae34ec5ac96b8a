package integration

import (
	"testing"
	"time"

	"github.com/quiltchain/quilt-go/consensus"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker/timeout"
	"github.com/quiltchain/quilt-go/module/builder"
	"github.com/quiltchain/quilt-go/network/mocknet"
	"github.com/quiltchain/quilt-go/utils/unittest"
	"github.com/stretchr/testify/require"
)

// fastTimeouts returns a timeout configuration suited for in-process
// tests: short enough to keep the tests quick, long enough for block
// production and vote aggregation to finish within a view.
func fastTimeouts(t *testing.T) timeout.Config {
	cfg, err := timeout.NewConfig(300*time.Millisecond, 3*time.Second, 1.5, 2)
	require.NoError(t, err)
	return cfg
}

// TestLiveness_HappyPath runs a committee of four validators and expects
// all of them to commit the same chain.
func TestLiveness_HappyPath(t *testing.T) {
	net := mocknet.NewNetwork(unittest.Logger())
	nodes := createNodes(t, net, 4, consensus.WithTimeoutConfig(fastTimeouts(t)))
	seedCommands(t, nodes, 50)
	startNodes(t, nodes)

	waitForHeight(t, nodes, 3, 30*time.Second)
	assertSameChain(t, nodes, 3)
	for _, node := range nodes {
		assertAscendingCommits(t, node)
	}
}

// TestLiveness_EmptyMempool verifies that the chain advances with empty
// blocks when no commands are pending.
func TestLiveness_EmptyMempool(t *testing.T) {
	net := mocknet.NewNetwork(unittest.Logger())
	nodes := createNodes(t, net, 4, consensus.WithTimeoutConfig(fastTimeouts(t)))
	startNodes(t, nodes)

	waitForHeight(t, nodes, 2, 30*time.Second)
	assertSameChain(t, nodes, 2)
}

// TestLiveness_BoundedPayloads verifies progress with a tightly bounded
// block size: commands drain over multiple blocks.
func TestLiveness_BoundedPayloads(t *testing.T) {
	net := mocknet.NewNetwork(unittest.Logger())
	nodes := createNodes(t, net, 4,
		consensus.WithTimeoutConfig(fastTimeouts(t)),
		consensus.WithBuilderOptions(builder.WithMaxPayloadSize(2)),
	)
	seedCommands(t, nodes, 20)
	startNodes(t, nodes)

	waitForHeight(t, nodes, 3, 30*time.Second)
	assertSameChain(t, nodes, 3)
	for _, node := range nodes {
		for h := uint64(1); h <= 3; h++ {
			block := node.Applied.BlockAt(h)
			require.LessOrEqual(t, len(block.Payload.Commands), 2)
		}
	}
}

// TestLiveness_CrashedReplica isolates one of four validators. The
// remaining three still reach quorum; views led by the crashed validator
// end in timeouts and the chain keeps growing. After the validator
// reconnects, it fetches the missed ancestry and catches up.
func TestLiveness_CrashedReplica(t *testing.T) {
	net := mocknet.NewNetwork(unittest.Logger())
	nodes := createNodes(t, net, 4, consensus.WithTimeoutConfig(fastTimeouts(t)))
	seedCommands(t, nodes, 100)
	startNodes(t, nodes)

	// let the full committee make some progress first
	waitForHeight(t, nodes, 2, 30*time.Second)

	crashed := nodes[1]
	live := []*Node{nodes[0], nodes[2], nodes[3]}
	net.Isolate(crashed.ID)

	// three of four validators still carry quorum
	target := uint64(0)
	for _, node := range live {
		if h := node.Applied.Height(); h > target {
			target = h
		}
	}
	target += 3
	waitForHeight(t, live, target, 60*time.Second)

	// the crashed validator reconnects and catches up
	net.Restore(crashed.ID)
	waitForHeight(t, nodes, target+2, 60*time.Second)
	assertSameChain(t, nodes, target+2)
	for _, node := range nodes {
		assertAscendingCommits(t, node)
	}
}
