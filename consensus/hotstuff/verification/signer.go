package verification

import (
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/module"
)

// Signer creates votes and proposals signed with the local node's staking
// key.
type Signer struct {
	local module.Local
}

var _ hotstuff.Signer = (*Signer)(nil)

// NewSigner creates a signer backed by the given local node info.
func NewSigner(local module.Local) *Signer {
	return &Signer{
		local: local,
	}
}

// CreateVote creates a vote for the given block, signed over the block's
// view and ID.
func (s *Signer) CreateVote(block *model.Block) (*model.Vote, error) {
	msg := MakeVoteMessage(block.View, block.BlockID)
	sigData, err := s.local.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("could not sign vote message: %w", err)
	}
	return model.VoteFromBlock(block, s.local.NodeID(), sigData), nil
}

// CreateProposal turns the given block into a signed proposal. The block
// must have been built with this node as proposer.
func (s *Signer) CreateProposal(block *model.Block) (*model.Proposal, error) {
	if block.ProposerID != s.local.NodeID() {
		return nil, fmt.Errorf("cannot sign proposal for block by other proposer (%x)", block.ProposerID)
	}
	msg := MakeVoteMessage(block.View, block.BlockID)
	sigData, err := s.local.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("could not sign proposal message: %w", err)
	}
	proposal := &model.Proposal{
		Block:   block,
		SigData: sigData,
	}
	return proposal, nil
}
