package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Communicator is the consensus engine's interface to the wire transport.
// Delivery is unordered and at-most-once: the engine tolerates message
// loss via pacemaker timeouts and duplicate delivery via idempotent vote
// and QC handling. Implementations must be non-blocking.
type Communicator interface {

	// BroadcastProposal sends the block proposal to all committee members.
	BroadcastProposal(proposal *model.Proposal) error

	// SendVote sends the vote to the given recipient, normally the leader
	// of the next view.
	SendVote(vote *model.Vote, recipientID quilt.Identifier) error

	// BroadcastNewView shares a new-view message, carrying our highest QC,
	// with all committee members.
	BroadcastNewView(newView *model.NewView) error

	// RequestBlock requests the block with the given ID from peers. Used
	// when a proposal references an ancestor missing from the local store.
	RequestBlock(blockID quilt.Identifier) error
}
