// Package network defines the boundary between the consensus engine and
// the wire transport. The engine sends through hotstuff.Communicator;
// inbound traffic is handed to an Adapter, keyed by the authenticated
// origin of the message. The transport itself (gossip, RPC, or the
// in-memory bus under mocknet) is interchangeable.
package network

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/model/messages"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/storage"
)

// Network attaches consensus nodes to a transport. Registering yields the
// node's outbound communicator; inbound messages flow through the adapter.
// The transport reads full blocks from the node's block store when it puts
// proposals on the wire.
type Network interface {
	Register(originID quilt.Identifier, adapter Adapter, blocks storage.Blocks) hotstuff.Communicator
}

// Adapter is the inbound side of a consensus node: the transport delivers
// received messages through it. The origin ID is the authenticated network
// identity of the sender; wire messages do not carry a sender field of
// their own. Implementations must tolerate duplicate and out-of-order
// delivery.
type Adapter interface {

	// SubmitProposal delivers a block proposal received from the given
	// origin.
	SubmitProposal(originID quilt.Identifier, proposal *messages.BlockProposal)

	// SubmitVote delivers a block vote received from the given origin. The
	// origin is the voter; votes are attributed to the sender, so a relayed
	// vote counts for the relayer, not the original signer.
	SubmitVote(originID quilt.Identifier, vote *messages.BlockVote)

	// SubmitNewView delivers a new-view message received from the given
	// origin.
	SubmitNewView(originID quilt.Identifier, newView *messages.NewView)
}
