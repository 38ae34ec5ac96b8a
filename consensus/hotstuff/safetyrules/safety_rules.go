// Package safetyrules implements the voting rules of the consensus
// protocol. It is the only place where votes are produced, and it persists
// its safety-critical state before any vote leaves the replica.
package safetyrules

import (
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

// SafetyRules produces votes for the given block according to the voting
// and locking rules of chained consensus:
//  1. a replica votes at most once per view, in increasing view order;
//  2. a replica only votes for a proposal whose justify does not
//     contradict its current lock;
//  3. the lock advances to the justify's block whenever the justify
//     certifies a higher view than the current lock.
//
// Not concurrency safe: SafetyRules is internal state of the event handler.
type SafetyRules struct {
	signer     hotstuff.Signer
	persist    hotstuff.Persister
	committee  hotstuff.Replicas
	safetyData *hotstuff.SafetyData
}

var _ hotstuff.SafetyRules = (*SafetyRules)(nil)

// New creates a new SafetyRules instance. The safety data is the state
// recovered from the persister, so a restarted replica cannot violate
// rules it promised to uphold before the crash.
func New(
	signer hotstuff.Signer,
	persist hotstuff.Persister,
	committee hotstuff.Replicas,
	safetyData *hotstuff.SafetyData,
) (*SafetyRules, error) {
	if safetyData == nil {
		return nil, model.NewConfigurationErrorf("cannot create safety rules without safety data")
	}
	sr := &SafetyRules{
		signer:     signer,
		persist:    persist,
		committee:  committee,
		safetyData: safetyData,
	}
	return sr, nil
}

// ProduceVote decides whether to vote for the given proposal.
// Returns:
//   - (vote, nil): on the first safe block for the current view.
//     Subsequently, no vote is produced for any block with the same or a
//     lower view.
//   - (nil, model.NoVoteError): the proposal is not safe to vote for.
//     This sentinel is expected during normal operation.
//
// All other errors are unexpected and potential symptoms of corrupted
// internal state or a failed persistence layer.
func (r *SafetyRules) ProduceVote(proposal *model.Proposal, curView uint64) (*model.Vote, error) {
	block := proposal.Block

	// sanity check: the event handler only asks for votes on proposals for
	// the view it is in
	if curView != block.View {
		return nil, fmt.Errorf("expecting block for current view %d, but block's view is %d", curView, block.View)
	}

	// rule 1: at most one vote per view, views in increasing order
	if curView <= r.safetyData.LastVotedView {
		return nil, model.NoVoteError{Msg: fmt.Sprintf("already voted in view %d", r.safetyData.LastVotedView)}
	}

	// only votes from committee members can contribute to a QC; a replica
	// without membership for the block's epoch stays silent
	_, err := r.committee.Identity(block.Epoch, r.committee.Self())
	if model.IsInvalidSignerError(err) {
		return nil, model.NoVoteError{Msg: "not a voting committee member for block"}
	}
	if err != nil {
		return nil, fmt.Errorf("could not get self identity: %w", err)
	}

	// rule 2: the justify must not contradict our lock
	if !r.isSafeToVote(block) {
		return nil, model.NoVoteError{Msg: fmt.Sprintf("block's justify (view %d) conflicts with lock at view %d", block.QC.View, r.safetyData.LockedView)}
	}

	vote, err := r.signer.CreateVote(block)
	if err != nil {
		return nil, fmt.Errorf("could not vote for block: %w", err)
	}

	// rule 3: advance the lock to the justify's block if it certifies a
	// higher view than the current lock
	r.safetyData.LastVotedView = curView
	if block.QC.View > r.safetyData.LockedView {
		r.safetyData.LockedView = block.QC.View
		r.safetyData.LockedBlockID = block.QC.BlockID
	}

	// the vote implies a durability promise; persist before releasing it
	err = r.persist.PutSafetyData(r.safetyData)
	if err != nil {
		return nil, fmt.Errorf("could not persist safety data: %w", err)
	}

	return vote, nil
}

// isSafeToVote checks whether voting for the block is compatible with the
// current lock: the justify either certifies a view above the lock, or it
// certifies the locked block itself (the block extends the lock directly).
func (r *SafetyRules) isSafeToVote(block *model.Block) bool {
	justify := block.QC
	if justify.View > r.safetyData.LockedView {
		return true
	}
	return justify.View == r.safetyData.LockedView && justify.BlockID == r.safetyData.LockedBlockID
}
