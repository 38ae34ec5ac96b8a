// Package blockproducer assembles signed block proposals when this
// replica is the leader of the current view.
package blockproducer

import (
	"errors"
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
)

// BlockProducer implements hotstuff.BlockProducer. It delegates payload
// assembly to the builder and signs the result; it has no side effects
// beyond storing the built block.
type BlockProducer struct {
	signer    hotstuff.Signer
	committee hotstuff.Replicas
	builder   module.Builder
}

var _ hotstuff.BlockProducer = (*BlockProducer)(nil)

func New(signer hotstuff.Signer, committee hotstuff.Replicas, builder module.Builder) *BlockProducer {
	p := &BlockProducer{
		signer:    signer,
		committee: committee,
		builder:   builder,
	}
	return p
}

// MakeBlockProposal builds a signed proposal for the given view, extending
// the block certified by newestQC.
// Error returns:
//   - model.NoProposalError if this replica is not the leader for curView,
//     or the mempool is empty and empty blocks are disabled. Expected
//     during normal operation.
func (p *BlockProducer) MakeBlockProposal(curView uint64, newestQC *quilt.QuorumCertificate) (*model.Proposal, error) {

	leaderID, err := p.committee.LeaderForView(curView)
	if err != nil {
		return nil, fmt.Errorf("could not determine leader for view %d: %w", curView, err)
	}
	self := p.committee.Self()
	if leaderID != self {
		return nil, model.NoProposalError{Msg: fmt.Sprintf("not leader for view %d", curView)}
	}

	block, err := p.builder.BuildOn(newestQC, func(header *quilt.Header) error {
		header.View = curView
		header.Epoch = p.committee.Epoch()
		header.ProposerID = self
		return nil
	})
	if err != nil {
		if errors.Is(err, module.ErrNoCommands) {
			return nil, model.NoProposalError{Msg: fmt.Sprintf("no commands to propose in view %d", curView)}
		}
		return nil, fmt.Errorf("could not build block on %x: %w", newestQC.BlockID, err)
	}

	proposal, err := p.signer.CreateProposal(model.BlockFromQuilt(block))
	if err != nil {
		return nil, fmt.Errorf("could not sign proposal for view %d: %w", curView, err)
	}

	return proposal, nil
}
