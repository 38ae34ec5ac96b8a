package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Forks maintains the in-memory tree of blocks above the last committed
// block and runs the commit rule: a block is committed once it is the root
// of a contiguous certified 3-chain with consecutive views. Committed
// blocks are handed to the finalizer in ascending height order, exactly
// once each.
//
// Not concurrency safe: Forks is internal state of the event handler and
// must only be used by the single event loop goroutine.
type Forks interface {

	// AddProposal adds the block proposal to the block tree. Proposals at
	// or below the last finalized view are dropped as stale (no error).
	// Error conditions:
	//   - model.MissingBlockError if the proposal's parent is unknown and
	//     above the finalized view; the caller should request a sync
	//   - model.ByzantineThresholdExceededError if adding the block would
	//     finalize a block conflicting with an already-finalized block
	AddProposal(proposal *model.Proposal) error

	// AddQC incorporates a quorum certificate into the block tree, marking
	// the certified block justified and evaluating the commit rule.
	// Stale QCs (at or below the finalized view) are no-ops.
	// Error conditions mirror AddProposal.
	AddQC(qc *quilt.QuorumCertificate) error

	// FinalizedView returns the view of the latest committed block.
	FinalizedView() uint64

	// FinalizedBlock returns the latest committed block.
	FinalizedBlock() *model.Block

	// NewestView returns the view of the newest stored block or QC.
	NewestView() uint64

	// GetProposal returns the stored proposal for the given block ID.
	GetProposal(id quilt.Identifier) (*model.Proposal, bool)

	// GetProposalsForView returns all known proposals for the given view.
	// More than one proposal indicates leader equivocation.
	GetProposalsForView(view uint64) []*model.Proposal
}
