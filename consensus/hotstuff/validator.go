package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Validator provides message-level validation of proposals, votes and
// quorum certificates: structural integrity, committee membership, leader
// assignment and signature validity.
type Validator interface {

	// ValidateQC checks the validity of a QC: a quorum of distinct
	// committee members for the QC's epoch and a verifying aggregated
	// signature.
	// Error conditions:
	//   - model.InvalidQCError for invalid quorum certificates
	ValidateQC(qc *quilt.QuorumCertificate, block *model.Block) error

	// ValidateProposal checks the validity of a proposal: designated
	// leader, verifying proposer signature, and a valid justify QC.
	// Error conditions:
	//   - model.InvalidBlockError for invalid proposals
	ValidateProposal(proposal *model.Proposal) error

	// ValidateVote checks the validity of a vote for the given block and
	// returns the voter's identity.
	// Error conditions:
	//   - model.InvalidVoteError for votes with bad signatures or signers
	//     outside the committee
	ValidateVote(vote *model.Vote, block *model.Block) (*quilt.Identity, error)
}
