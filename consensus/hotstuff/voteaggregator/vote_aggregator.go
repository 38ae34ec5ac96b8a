// Package voteaggregator implements the asynchronous intake of votes and
// block proposals and their routing to the per-view vote collectors. All
// processing happens on a worker pool, off the critical path of the event
// loop; constructed QCs are handed back via the OnQCCreated callback.
package voteaggregator

import (
	"context"
	"errors"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/votecollector"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// defaultWorkers is the number of goroutines processing queued votes.
const defaultWorkers = 4

// VoteAggregator implements hotstuff.VoteAggregator.
type VoteAggregator struct {
	log         zerolog.Logger
	notifier    hotstuff.Consumer
	committee   hotstuff.Replicas
	validator   hotstuff.Validator
	onQCCreated hotstuff.OnQCCreated
	workers     *workerpool.WorkerPool

	lock               sync.Mutex
	collectors         map[uint64]*votecollector.VoteCollector
	lowestRetainedView uint64
}

var _ hotstuff.VoteAggregator = (*VoteAggregator)(nil)

// New creates a new VoteAggregator. The onQCCreated callback is invoked
// exactly once per certified block, from a worker goroutine.
func New(
	log zerolog.Logger,
	notifier hotstuff.Consumer,
	committee hotstuff.Replicas,
	validator hotstuff.Validator,
	lowestRetainedView uint64,
	onQCCreated hotstuff.OnQCCreated,
) *VoteAggregator {
	return &VoteAggregator{
		log:                log.With().Str("component", "vote_aggregator").Logger(),
		notifier:           notifier,
		committee:          committee,
		validator:          validator,
		onQCCreated:        onQCCreated,
		workers:            workerpool.New(defaultWorkers),
		collectors:         make(map[uint64]*votecollector.VoteCollector),
		lowestRetainedView: lowestRetainedView,
	}
}

// Start starts the aggregator. The worker pool drains and stops when the
// context is cancelled.
func (va *VoteAggregator) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		va.workers.StopWait()
	}()
}

// AddVote enqueues a vote for asynchronous processing. Votes for pruned
// views are dropped immediately.
func (va *VoteAggregator) AddVote(vote *model.Vote) {
	collector, retained := va.getOrCreateCollector(vote.View)
	if !retained {
		va.log.Debug().Uint64("view", vote.View).Msg("dropping vote for pruned view")
		return
	}
	va.workers.Submit(func() {
		va.processVote(collector, vote)
	})
}

// AddBlock enqueues a validated block proposal for asynchronous
// processing, so that cached votes for it can be replayed. Proposals at
// pruned views are dropped immediately.
//
// The replay can complete a quorum, in which case the onQCCreated callback
// fires from the worker goroutine. Enqueueing instead of processing inline
// keeps the event loop out of that hand-off: the loop is the consumer of
// the constructed QCs, so it must never be the goroutine publishing them.
func (va *VoteAggregator) AddBlock(proposal *model.Proposal) {
	collector, retained := va.getOrCreateCollector(proposal.Block.View)
	if !retained {
		return
	}
	va.workers.Submit(func() {
		va.processBlock(collector, proposal)
	})
}

// PruneUpToView drops all collection state for views strictly below the
// given view. If the value is lower than a previous prune, the call is a
// no-op.
func (va *VoteAggregator) PruneUpToView(view uint64) {
	va.lock.Lock()
	defer va.lock.Unlock()
	if view <= va.lowestRetainedView {
		return
	}
	for collectorView := range va.collectors {
		if collectorView < view {
			delete(va.collectors, collectorView)
		}
	}
	va.lowestRetainedView = view
}

// getOrCreateCollector returns the collector for the view, creating it if
// needed. Returns false if the view has been pruned.
func (va *VoteAggregator) getOrCreateCollector(view uint64) (*votecollector.VoteCollector, bool) {
	va.lock.Lock()
	defer va.lock.Unlock()
	if view < va.lowestRetainedView {
		return nil, false
	}
	collector, found := va.collectors[view]
	if !found {
		collector = votecollector.NewStateMachine(view, va.committee, va.validator, va.qcCreated)
		va.collectors[view] = collector
	}
	return collector, true
}

func (va *VoteAggregator) qcCreated(qc *quilt.QuorumCertificate) {
	va.notifier.OnQcConstructedFromVotes(qc)
	va.onQCCreated(qc)
}

// processBlock runs on a worker goroutine. A repeated proposal by the same
// leader for the view is reported as equivocation, never escalated.
func (va *VoteAggregator) processBlock(collector *votecollector.VoteCollector, proposal *model.Proposal) {
	err := collector.ProcessBlock(proposal)
	if err == nil {
		return
	}
	if doubleVoteErr, isDoubleVote := model.AsDoubleVoteError(err); isDoubleVote {
		va.notifier.OnDoubleVotingDetected(doubleVoteErr.FirstVote, doubleVoteErr.ConflictingVote)
		return
	}
	va.log.Err(err).
		Uint64("view", proposal.Block.View).
		Hex("block_id", proposal.Block.BlockID[:]).
		Msg("unexpected error processing block")
}

// processVote runs on a worker goroutine. Expected failure modes of
// Byzantine votes are reported to the notifier and logged, never escalated:
// a malicious vote must not crash the aggregator.
func (va *VoteAggregator) processVote(collector *votecollector.VoteCollector, vote *model.Vote) {
	err := collector.AddVote(vote)
	if err == nil {
		return
	}
	if doubleVoteErr, isDoubleVote := model.AsDoubleVoteError(err); isDoubleVote {
		va.notifier.OnDoubleVotingDetected(doubleVoteErr.FirstVote, doubleVoteErr.ConflictingVote)
		return
	}
	if model.IsInvalidVoteError(err) {
		va.notifier.OnInvalidVoteDetected(vote)
		return
	}
	if errors.Is(err, votecollector.VoteForIncompatibleBlockError) {
		// evidence of a conflicting proposal; the corresponding double
		// votes are reported when both votes of a signer are seen
		va.log.Debug().
			Uint64("view", vote.View).
			Hex("block_id", vote.BlockID[:]).
			Msg("dropping vote for conflicting block")
		return
	}
	va.log.Err(err).
		Uint64("view", vote.View).
		Hex("voter_id", vote.SignerID[:]).
		Msg("unexpected error processing vote")
}
