package messages

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// BlockProposal is a signed block proposal, broadcast by the leader of the
// proposal's view to all committee members.
type BlockProposal struct {
	Block       *quilt.Block
	ProposerSig []byte
}

// BlockVote is a vote for a block proposal, sent to the leader of the next
// view (who aggregates votes for the proposal into a quorum certificate).
type BlockVote struct {
	BlockID quilt.Identifier
	View    uint64
	SigData []byte
}

// NewView is broadcast when a replica's view timer expires. It carries the
// highest quorum certificate known to the sender, allowing the next leader
// to adopt it and propose on top of the freshest certified block.
type NewView struct {
	View      uint64
	HighestQC *quilt.QuorumCertificate
}

// BlockRequest requests a block by ID from a peer. It is issued when a
// proposal references an ancestor missing from the local block store.
type BlockRequest struct {
	BlockID quilt.Identifier
	Nonce   uint64
}

// BlockResponse answers a block request.
type BlockResponse struct {
	OriginID quilt.Identifier
	Proposal *BlockProposal
	Nonce    uint64
}
