// Package mocknet provides an in-memory message bus connecting consensus
// participants within a single process. It implements the engine's
// communicator on top of direct method calls, which makes multi-node
// protocol tests possible without sockets.
package mocknet

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/messages"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/network"
	"github.com/quiltchain/quilt-go/storage"
)

// Network is an in-memory bus between consensus participants. Broadcasts
// reach every registered node, including the sender; the leader processes
// its own proposal through the same path as every other replica. Nodes can
// be isolated to simulate crashes and partitions.
type Network struct {
	log zerolog.Logger

	mu       sync.RWMutex
	adapters map[quilt.Identifier]network.Adapter
	isolated map[quilt.Identifier]struct{}
	// proposals records every broadcast proposal, so that nodes which
	// missed the original delivery can fetch ancestors on request
	proposals map[quilt.Identifier]*messages.BlockProposal
}

func NewNetwork(log zerolog.Logger) *Network {
	return &Network{
		log:       log.With().Str("component", "mocknet").Logger(),
		adapters:  make(map[quilt.Identifier]network.Adapter),
		isolated:  make(map[quilt.Identifier]struct{}),
		proposals: make(map[quilt.Identifier]*messages.BlockProposal),
	}
}

// Register attaches a node to the bus. The returned conduit is the node's
// outbound side; inbound messages are delivered through the adapter. The
// blocks store resolves outbound proposals to full blocks for the wire.
func (n *Network) Register(originID quilt.Identifier, adapter network.Adapter, blocks storage.Blocks) hotstuff.Communicator {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adapters[originID] = adapter
	return &Conduit{
		net:      n,
		originID: originID,
		blocks:   blocks,
	}
}

// Isolate disconnects the node from the bus: messages from and to it are
// dropped until Restore.
func (n *Network) Isolate(originID quilt.Identifier) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.isolated[originID] = struct{}{}
}

// Restore reconnects a previously isolated node.
func (n *Network) Restore(originID quilt.Identifier) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.isolated, originID)
}

// deliverable returns the adapter for the recipient, or nil if either end
// of the link is isolated or the recipient is unknown.
func (n *Network) deliverable(senderID quilt.Identifier, recipientID quilt.Identifier) network.Adapter {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if _, cut := n.isolated[senderID]; cut {
		return nil
	}
	if _, cut := n.isolated[recipientID]; cut {
		return nil
	}
	return n.adapters[recipientID]
}

func (n *Network) recipients() []quilt.Identifier {
	n.mu.RLock()
	defer n.mu.RUnlock()
	recipients := make([]quilt.Identifier, 0, len(n.adapters))
	for id := range n.adapters {
		recipients = append(recipients, id)
	}
	return recipients
}

// Conduit is the outbound side of one node. It implements the engine's
// communicator; all deliveries happen on fresh goroutines, so sending
// never blocks the consensus event loop.
type Conduit struct {
	net      *Network
	originID quilt.Identifier
	blocks   storage.Blocks
}

var _ hotstuff.Communicator = (*Conduit)(nil)

// BroadcastProposal sends the proposal to all registered nodes, the sender
// included.
func (c *Conduit) BroadcastProposal(proposal *model.Proposal) error {
	block, err := c.blocks.ByID(proposal.Block.BlockID)
	if err != nil {
		return err
	}
	msg := &messages.BlockProposal{
		Block:       block,
		ProposerSig: proposal.SigData,
	}

	c.net.mu.Lock()
	c.net.proposals[proposal.Block.BlockID] = msg
	c.net.mu.Unlock()

	for _, recipientID := range c.net.recipients() {
		adapter := c.net.deliverable(c.originID, recipientID)
		if adapter == nil {
			continue
		}
		go adapter.SubmitProposal(c.originID, msg)
	}
	return nil
}

// SendVote sends the vote to the given recipient.
func (c *Conduit) SendVote(vote *model.Vote, recipientID quilt.Identifier) error {
	adapter := c.net.deliverable(c.originID, recipientID)
	if adapter == nil {
		return nil
	}
	msg := &messages.BlockVote{
		BlockID: vote.BlockID,
		View:    vote.View,
		SigData: vote.SigData,
	}
	go adapter.SubmitVote(c.originID, msg)
	return nil
}

// BroadcastNewView shares the new-view message with all other nodes.
func (c *Conduit) BroadcastNewView(newView *model.NewView) error {
	msg := &messages.NewView{
		View:      newView.View,
		HighestQC: newView.HighestQC,
	}
	for _, recipientID := range c.net.recipients() {
		if recipientID == c.originID {
			continue
		}
		adapter := c.net.deliverable(c.originID, recipientID)
		if adapter == nil {
			continue
		}
		go adapter.SubmitNewView(c.originID, msg)
	}
	return nil
}

// RequestBlock fetches a previously broadcast proposal and redelivers it
// to the requesting node.
func (c *Conduit) RequestBlock(blockID quilt.Identifier) error {
	c.net.mu.RLock()
	msg, found := c.net.proposals[blockID]
	c.net.mu.RUnlock()
	if !found {
		return nil
	}
	// any connected peer holding the block could serve the request, so
	// only the requester's own connectivity matters
	adapter := c.net.deliverable(c.originID, c.originID)
	if adapter == nil {
		return nil
	}
	go adapter.SubmitProposal(msg.Block.Header.ProposerID, msg)
	return nil
}
