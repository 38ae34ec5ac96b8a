package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// BlockProducer builds a signed block proposal extending the block
// certified by the given QC. It has no side effects: broadcasting the
// proposal is the event handler's job.
type BlockProducer interface {

	// MakeBlockProposal builds a proposal for the given view, extending
	// the block certified by newestQC.
	// Returns:
	//   - (nil, model.NoProposalError) if this replica is not the leader
	//     for curView, or the mempool is empty and empty blocks are
	//     disabled. Expected during normal operation.
	MakeBlockProposal(curView uint64, newestQC *quilt.QuorumCertificate) (*model.Proposal, error)
}
