// Package votecollector implements the collection of votes for a single
// view and their aggregation into a quorum certificate.
//
// A collector starts in the caching state, where votes arriving ahead of
// the block proposal are cached unverified. Once the proposal is known,
// the collector transitions to the verifying state, replays the cached
// votes and aggregates verified signatures until the quorum threshold is
// reached, at which point it builds the QC exactly once and becomes done.
package votecollector

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// VoteCollector implements hotstuff.VoteCollector. Concurrency safe.
type VoteCollector struct {
	view        uint64
	committee   hotstuff.Replicas
	validator   hotstuff.Validator
	onQCCreated hotstuff.OnQCCreated

	lock   sync.Mutex
	status hotstuff.VoteCollectorStatus

	// firstVotes tracks the first vote seen per signer within this view,
	// regardless of block, to detect equivocation.
	firstVotes map[quilt.Identifier]*model.Vote

	// populated on transition to the verifying state
	block             *model.Block
	threshold         uint64
	accumulated       map[quilt.Identifier][]byte // verified signatures by signer
	accumulatedWeight uint64

	done *atomic.Bool
}

var _ hotstuff.VoteCollector = (*VoteCollector)(nil)

// NewStateMachine creates a vote collector for the given view, starting in
// the caching state.
func NewStateMachine(
	view uint64,
	committee hotstuff.Replicas,
	validator hotstuff.Validator,
	onQCCreated hotstuff.OnQCCreated,
) *VoteCollector {
	return &VoteCollector{
		view:        view,
		committee:   committee,
		validator:   validator,
		onQCCreated: onQCCreated,
		status:      hotstuff.VoteCollectorStatusCaching,
		firstVotes:  make(map[quilt.Identifier]*model.Vote),
		accumulated: make(map[quilt.Identifier][]byte),
		done:        atomic.NewBool(false),
	}
}

// View returns the view the collector is collecting votes for.
func (c *VoteCollector) View() uint64 {
	return c.view
}

// Status returns the current status of the collector.
func (c *VoteCollector) Status() hotstuff.VoteCollectorStatus {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.status
}

// AddVote adds a vote to the collector. Duplicate votes are no-ops.
// Error returns:
//   - VoteForIncompatibleViewError for votes outside the collector's view
//   - VoteForIncompatibleBlockError for votes within the view but for a
//     block other than the certified one (dropped by the caller)
//   - model.DoubleVoteError for equivocating votes
//   - model.InvalidVoteError for votes failing validation
func (c *VoteCollector) AddVote(vote *model.Vote) error {
	if vote.View != c.view {
		return fmt.Errorf("collector processes votes for view %d, but vote is for view %d: %w",
			c.view, vote.View, VoteForIncompatibleViewError)
	}

	qc, err := c.acceptVote(vote)
	// the callback runs without the lock held: it may block on a slow
	// consumer or call back into the collector without stalling other
	// voters or the proposal path
	if qc != nil {
		c.onQCCreated(qc)
	}
	return err
}

func (c *VoteCollector) acceptVote(vote *model.Vote) (*quilt.QuorumCertificate, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.status == hotstuff.VoteCollectorStatusDone {
		return nil, nil
	}

	// equivocation and duplicate detection against the first vote seen
	// from this signer
	first, voted := c.firstVotes[vote.SignerID]
	if voted {
		if first.BlockID != vote.BlockID {
			return nil, model.NewDoubleVoteErrorf(first, vote, "signer %x voted for two blocks in view %d", vote.SignerID, vote.View)
		}
		return nil, nil
	}

	if c.status == hotstuff.VoteCollectorStatusCaching {
		c.firstVotes[vote.SignerID] = vote
		return nil, nil
	}

	// votes for a different block of this view cannot be verified against
	// our block; keep them as equivocation evidence and report them to the
	// caller
	if vote.BlockID != c.block.BlockID {
		c.firstVotes[vote.SignerID] = vote
		return nil, fmt.Errorf("expected vote for block %x but got %x: %w", c.block.BlockID, vote.BlockID, VoteForIncompatibleBlockError)
	}

	// verify before recording, so a forged vote cannot suppress the
	// signer's genuine one
	qc, err := c.processVote(vote)
	if err != nil {
		return nil, err
	}
	c.firstVotes[vote.SignerID] = vote
	return qc, nil
}

// ProcessBlock transitions the collector from the caching to the verifying
// state using the given validated proposal, counts the proposer's
// signature as the first vote and replays all cached votes. Idempotent on
// repeated calls with the same block.
// Error returns:
//   - model.InvalidBlockError if the proposal is for a different view
func (c *VoteCollector) ProcessBlock(proposal *model.Proposal) error {
	block := proposal.Block
	if block.View != c.view {
		return model.InvalidBlockError{
			BlockID: block.BlockID,
			View:    block.View,
			Err:     fmt.Errorf("collector for view %d cannot process block: %w", c.view, VoteForIncompatibleViewError),
		}
	}

	qc, err := c.acceptBlock(proposal)
	// see AddVote: the callback must not run under the collector lock
	if qc != nil {
		c.onQCCreated(qc)
	}
	return err
}

func (c *VoteCollector) acceptBlock(proposal *model.Proposal) (*quilt.QuorumCertificate, error) {
	block := proposal.Block

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.status != hotstuff.VoteCollectorStatusCaching {
		// a second proposal by the same leader for this view is
		// equivocation; the proposer's signature is its vote
		proposerVote := proposal.ProposerVote()
		if first, voted := c.firstVotes[proposerVote.SignerID]; voted && first.BlockID != proposerVote.BlockID {
			return nil, model.NewDoubleVoteErrorf(first, proposerVote, "proposer %x proposed two blocks in view %d", proposerVote.SignerID, block.View)
		}
		return nil, nil
	}

	threshold, err := c.committee.QuorumThreshold(block.Epoch)
	if err != nil {
		return nil, fmt.Errorf("could not get quorum threshold for epoch %d: %w", block.Epoch, err)
	}
	c.block = block
	c.threshold = threshold
	c.status = hotstuff.VoteCollectorStatusVerifying

	// the proposer's signature counts as a vote
	proposerVote := proposal.ProposerVote()
	if _, voted := c.firstVotes[proposerVote.SignerID]; !voted {
		c.firstVotes[proposerVote.SignerID] = proposerVote
	}

	// replay cached votes; invalid ones are dropped without failing the
	// transition
	var created *quilt.QuorumCertificate
	for _, vote := range c.firstVotes {
		qc, err := c.processVote(vote)
		if err != nil {
			continue
		}
		if qc != nil {
			created = qc
		}
	}
	return created, nil
}

// processVote verifies and accumulates a single vote for the certified
// block, returning the QC when this vote completes the quorum. Caller must
// hold the lock and have established verifying state; the returned QC must
// be handed to the onQCCreated callback after releasing the lock.
func (c *VoteCollector) processVote(vote *model.Vote) (*quilt.QuorumCertificate, error) {
	err := EnsureVoteForBlock(vote, c.block)
	if err != nil {
		return nil, err
	}
	if _, accumulated := c.accumulated[vote.SignerID]; accumulated {
		return nil, nil
	}

	voter, err := c.validator.ValidateVote(vote, c.block)
	if err != nil {
		return nil, fmt.Errorf("could not validate vote %x: %w", vote.ID(), err)
	}

	c.accumulated[vote.SignerID] = vote.SigData
	c.accumulatedWeight += voter.Weight

	if c.accumulatedWeight < c.threshold {
		return nil, nil
	}
	// one-shot: only the vote that crosses the threshold builds the QC
	if !c.done.CAS(false, true) {
		return nil, nil
	}
	qc, err := c.buildQC()
	if err != nil {
		return nil, fmt.Errorf("could not build QC for block %x: %w", c.block.BlockID, err)
	}
	c.status = hotstuff.VoteCollectorStatusDone
	return qc, nil
}

// buildQC aggregates the accumulated signatures into a quorum certificate.
// The signer list is emitted in canonical order; BLS aggregation is
// order-independent, so signatures need no matching permutation.
func (c *VoteCollector) buildQC() (*quilt.QuorumCertificate, error) {
	signerIDs := make([]quilt.Identifier, 0, len(c.accumulated))
	sigs := make([][]byte, 0, len(c.accumulated))
	for signerID := range c.accumulated {
		signerIDs = append(signerIDs, signerID)
	}
	sort.Slice(signerIDs, func(i, j int) bool {
		return quilt.IsCanonicallyBefore(signerIDs[i], signerIDs[j])
	})
	for _, signerID := range signerIDs {
		sigs = append(sigs, c.accumulated[signerID])
	}

	sigData, err := bls.AggregateSignatures(sigs...)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate signatures: %w", err)
	}

	qc := &quilt.QuorumCertificate{
		View:      c.view,
		BlockID:   c.block.BlockID,
		SignerIDs: signerIDs,
		SigData:   sigData,
	}
	return qc, nil
}
