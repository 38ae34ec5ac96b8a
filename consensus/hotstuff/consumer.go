package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// FinalizationConsumer consumes outbound notifications about the
// progression of the certified chain. Implementations must be non-blocking
// and concurrency safe.
type FinalizationConsumer interface {

	// OnBlockIncorporated is called whenever a valid block is added to the
	// block tree.
	OnBlockIncorporated(*model.Block)

	// OnFinalizedBlock is called whenever a block is committed. Blocks are
	// reported in order of increasing height, exactly once each.
	OnFinalizedBlock(*model.Block)

	// OnDoubleProposeDetected is called whenever a double block proposal
	// (equivocation) for the same view was detected.
	OnDoubleProposeDetected(*model.Block, *model.Block)

	// OnQcIncorporated is called whenever a QC is incorporated into the
	// block tree.
	OnQcIncorporated(qc *quilt.QuorumCertificate)
}

// Consumer consumes notifications produced by the consensus engine.
// Notifications are state changes or protocol events of potential interest
// to the larger node; the engine does not wait for consumers.
// Implementations must be non-blocking and concurrency safe.
type Consumer interface {
	FinalizationConsumer

	// OnEventProcessed is called whenever the event handler has processed
	// one event it retrieved from the event loop.
	OnEventProcessed()

	// OnEnteringView is called whenever the pacemaker enters a new view.
	OnEnteringView(viewNumber uint64, leader quilt.Identifier)

	// OnReceiveProposal is called whenever a block proposal reaches the
	// event handler.
	OnReceiveProposal(currentView uint64, proposal *model.Proposal)

	// OnQcTriggeredViewChange is called whenever a QC triggered a view
	// change.
	OnQcTriggeredViewChange(qc *quilt.QuorumCertificate, newView uint64)

	// OnQcConstructedFromVotes is called whenever the vote aggregator
	// assembled a QC from a quorum of votes.
	OnQcConstructedFromVotes(qc *quilt.QuorumCertificate)

	// OnProposingBlock is called whenever this replica, as leader,
	// generated a block proposal.
	OnProposingBlock(proposal *model.Proposal)

	// OnVoting is called whenever this replica decided to vote for a block.
	OnVoting(vote *model.Vote)

	// OnStartingTimeout is called whenever a view timer is started.
	OnStartingTimeout(info model.TimerInfo)

	// OnReachedTimeout is called whenever a view timer expired.
	OnReachedTimeout(info model.TimerInfo)

	// OnNewViewBroadcast is called whenever this replica gave up on a view
	// and shared its highest QC with the committee.
	OnNewViewBroadcast(newView *model.NewView)

	// OnDoubleVotingDetected is called whenever two conflicting votes by
	// the same committee member in the same view were detected.
	OnDoubleVotingDetected(first *model.Vote, conflicting *model.Vote)

	// OnInvalidVoteDetected is called whenever a vote with an invalid
	// signature or from a non-member was detected.
	OnInvalidVoteDetected(vote *model.Vote)

	// OnSyncRequested is called whenever a proposal referenced a missing
	// ancestor and a sync request was issued to the transport.
	OnSyncRequested(blockID quilt.Identifier, view uint64)
}
