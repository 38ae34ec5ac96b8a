package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

// Signer produces this replica's signatures over consensus messages. The
// cryptographic primitives behind it are an opaque service; the signer
// only guarantees that a produced vote or proposal verifies against this
// replica's registered public key.
type Signer interface {

	// CreateVote creates a signed vote for the given block.
	CreateVote(block *model.Block) (*model.Vote, error)

	// CreateProposal turns the given block into a signed proposal. The
	// proposer's signature doubles as its vote for the block.
	CreateProposal(block *model.Block) (*model.Proposal, error)
}
