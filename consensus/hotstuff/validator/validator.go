// Package validator implements message-level validation of proposals,
// votes and quorum certificates, ahead of any state change in the
// consensus engine.
package validator

import (
	"errors"
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Validator is responsible for validating QCs, proposals and votes against
// the committee snapshot for their epoch.
type Validator struct {
	committee hotstuff.Replicas
	verifier  hotstuff.Verifier
}

var _ hotstuff.Validator = (*Validator)(nil)

// New creates a new Validator.
func New(
	committee hotstuff.Replicas,
	verifier hotstuff.Verifier,
) *Validator {
	return &Validator{
		committee: committee,
		verifier:  verifier,
	}
}

// ValidateQC validates the quorum certificate for the given block:
// all signers are committee members without duplicates, their combined
// weight reaches the quorum threshold, and the aggregated signature
// verifies.
// Error returns:
//   - model.InvalidQCError if the QC is invalid
//   - model.ErrViewForUnknownEpoch if no committee snapshot covers the
//     block's epoch
func (v *Validator) ValidateQC(qc *quilt.QuorumCertificate, block *model.Block) error {
	if qc.BlockID != block.BlockID {
		// a caller-side bug, not a Byzantine message
		return fmt.Errorf("qc.BlockID %x does not match block (%x)", qc.BlockID, block.BlockID)
	}
	if qc.View != block.View {
		return newInvalidQCError(qc, fmt.Errorf("qc's view %d does not match block's view %d", qc.View, block.View))
	}

	// the genesis certificate is a protocol constant rather than a quorum
	// artifact; it carries no signatures
	if qc.View == 0 {
		if len(qc.SignerIDs) > 0 || len(qc.SigData) > 0 {
			return newInvalidQCError(qc, fmt.Errorf("genesis certificate must not carry signatures"))
		}
		return nil
	}

	allParticipants, err := v.committee.Identities(block.Epoch)
	if err != nil {
		return fmt.Errorf("could not get consensus participants at epoch %d: %w", block.Epoch, err)
	}

	signers := allParticipants.Filter(quilt.HasNodeID(qc.SignerIDs...))
	if len(signers) < len(qc.SignerIDs) {
		return newInvalidQCError(qc, model.NewInvalidSignerErrorf("some signers are duplicated or not valid consensus participants"))
	}

	threshold, err := v.committee.QuorumThreshold(block.Epoch)
	if err != nil {
		return fmt.Errorf("could not get quorum threshold for epoch %d: %w", block.Epoch, err)
	}
	if signers.TotalWeight() < threshold {
		return newInvalidQCError(qc, fmt.Errorf("qc signers have insufficient weight of %d (quorum threshold is %d)", signers.TotalWeight(), threshold))
	}

	err = v.verifier.VerifyQC(signers, qc.SigData, qc.View, qc.BlockID)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrInvalidSignature) || model.IsInsufficientSignaturesError(err) {
		return newInvalidQCError(qc, err)
	}
	return fmt.Errorf("cannot verify qc's aggregated signature (qc.BlockID: %x): %w", qc.BlockID, err)
}

// ValidateProposal validates the block proposal: the proposer is the
// designated leader for the block's view, the proposer's signature
// verifies, and the embedded justify QC is valid.
// Error returns:
//   - model.InvalidBlockError if the proposal is invalid
//   - model.ErrViewForUnknownEpoch if no committee snapshot covers the
//     block's epoch
func (v *Validator) ValidateProposal(proposal *model.Proposal) error {
	qc := proposal.Block.QC
	block := proposal.Block

	// the leader for the block's view must be the proposer
	leader, err := v.committee.LeaderForView(block.View)
	if err != nil {
		return fmt.Errorf("could not get leader for view %d: %w", block.View, err)
	}
	if leader != block.ProposerID {
		return newInvalidBlockError(block, fmt.Errorf("proposer %x is not leader (%x) for view %d", block.ProposerID, leader, block.View))
	}

	// the justify must certify the direct parent, i.e. stem from a
	// strictly lower view
	if qc.View >= block.View {
		return newInvalidBlockError(block, fmt.Errorf("qc's view %d must be below block's view %d", qc.View, block.View))
	}

	// the proposer's signature doubles as its vote for the block
	vote := proposal.ProposerVote()
	_, err = v.ValidateVote(vote, block)
	if err != nil {
		if model.IsInvalidVoteError(err) {
			return newInvalidBlockError(block, fmt.Errorf("invalid proposer signature: %w", err))
		}
		return fmt.Errorf("error verifying proposer signature for block %x: %w", block.BlockID, err)
	}

	err = v.ValidateQC(qc, &model.Block{
		BlockID: qc.BlockID,
		View:    qc.View,
		Epoch:   block.Epoch,
	})
	if err != nil {
		if model.IsInvalidQCError(err) {
			return newInvalidBlockError(block, fmt.Errorf("invalid justify qc: %w", err))
		}
		if errors.Is(err, model.ErrViewForUnknownEpoch) {
			return fmt.Errorf("no committee snapshot for justify qc (qc.View: %d): %s", qc.View, err.Error())
		}
		return fmt.Errorf("unexpected error verifying justify qc: %w", err)
	}

	return nil
}

// ValidateVote validates a single vote for the given block: the voter is a
// committee member for the block's epoch and the signature verifies.
// Returns the voter's identity on success.
// Error returns:
//   - model.InvalidVoteError if the vote is invalid
func (v *Validator) ValidateVote(vote *model.Vote, block *model.Block) (*quilt.Identity, error) {
	if vote.BlockID != block.BlockID {
		// a caller-side bug, not a Byzantine message
		return nil, fmt.Errorf("vote.BlockID %x does not match block (%x)", vote.BlockID, block.BlockID)
	}
	if vote.View != block.View {
		return nil, newInvalidVoteError(vote, fmt.Errorf("vote's view %d does not match block's view %d", vote.View, block.View))
	}

	voter, err := v.committee.Identity(block.Epoch, vote.SignerID)
	if model.IsInvalidSignerError(err) {
		return nil, newInvalidVoteError(vote, err)
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving voter identity %x: %w", vote.SignerID, err)
	}

	err = v.verifier.VerifyVote(voter, vote.SigData, vote.View, vote.BlockID)
	if err == nil {
		return voter, nil
	}
	if errors.Is(err, model.ErrInvalidSignature) {
		return nil, newInvalidVoteError(vote, err)
	}
	return nil, fmt.Errorf("cannot verify signature for vote (%x): %w", vote.ID(), err)
}

func newInvalidBlockError(block *model.Block, err error) error {
	return model.InvalidBlockError{
		BlockID: block.BlockID,
		View:    block.View,
		Err:     err,
	}
}

func newInvalidQCError(qc *quilt.QuorumCertificate, err error) error {
	return model.InvalidQCError{
		BlockID: qc.BlockID,
		View:    qc.View,
		Err:     err,
	}
}

func newInvalidVoteError(vote *model.Vote, err error) error {
	return model.InvalidVoteError{
		VoteID: vote.ID(),
		View:   vote.View,
		Err:    err,
	}
}
