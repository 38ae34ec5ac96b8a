package hotstuff

import (
	"context"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// OnQCCreated is the callback invoked when a quorum certificate has been
// constructed from votes. It is invoked exactly once per certified block.
type OnQCCreated func(*quilt.QuorumCertificate)

// VoteAggregator verifies and aggregates votes into quorum certificates.
// Vote intake is non-blocking; votes for different blocks are processed
// concurrently, while constructed QCs are handed back to the serialized
// event loop via the OnQCCreated callback.
type VoteAggregator interface {

	// Start starts the aggregator's worker routines. Workers stop when the
	// context is cancelled.
	Start(ctx context.Context)

	// AddVote enqueues a vote for asynchronous verification and
	// aggregation. Duplicate votes are idempotent; votes for unknown
	// blocks are cached until the block arrives; votes for pruned views
	// are dropped.
	AddVote(vote *model.Vote)

	// AddBlock enqueues a valid block proposal for asynchronous
	// processing, so that cached votes for it can be replayed. The
	// proposer's signature is counted as the first vote. A proposer
	// equivocating within the view is reported to the notifier.
	AddBlock(proposal *model.Proposal)

	// PruneUpToView drops all vote-collection state for views strictly
	// below the given view. Pending work for pruned views is discarded,
	// not retried.
	PruneUpToView(view uint64)
}

// VoteCollectorStatus is the status of a single vote collector.
type VoteCollectorStatus int

const (
	// VoteCollectorStatusCaching: the block is unknown, votes are cached
	// without verification.
	VoteCollectorStatusCaching VoteCollectorStatus = iota
	// VoteCollectorStatusVerifying: the block is known, votes are verified
	// and aggregated.
	VoteCollectorStatusVerifying
	// VoteCollectorStatusDone: a QC has been built, further votes are
	// no-ops.
	VoteCollectorStatusDone
)

func (ps VoteCollectorStatus) String() string {
	names := [...]string{"VoteCollectorStatusCaching", "VoteCollectorStatusVerifying", "VoteCollectorStatusDone"}
	if ps < 0 || int(ps) > len(names)-1 {
		return "UNKNOWN"
	}
	return names[ps]
}

// VoteCollector collects votes for one proposal and builds a QC when the
// quorum threshold is reached. Concurrency safe.
type VoteCollector interface {

	// AddVote adds a vote to the collector. Duplicate votes by the same
	// signer are no-ops; conflicting votes return a DoubleVoteError.
	// When the quorum threshold is reached, the collector builds the QC
	// and invokes the OnQCCreated callback exactly once.
	// Error conditions:
	//   - model.InvalidVoteError (sentinel) for invalid votes
	//   - model.DoubleVoteError (sentinel) for equivocating votes
	AddVote(vote *model.Vote) error

	// View returns the view the collector is collecting votes for.
	View() uint64

	// Status returns the current status of the collector.
	Status() VoteCollectorStatus
}
