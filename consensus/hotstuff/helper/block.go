// Package helper provides fixtures for consensus-internal types, used by
// the unit tests of the individual consensus components.
package helper

import (
	"math/rand"
	"time"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

func MakeBlock(options ...func(*model.Block)) *model.Block {
	view := uint64(rand.Intn(1000) + 10)
	block := model.Block{
		View:        view,
		BlockID:     unittest.IdentifierFixture(),
		ProposerID:  unittest.IdentifierFixture(),
		Height:      view,
		Epoch:       1,
		QC:          MakeQC(WithQCView(view - 1)),
		PayloadHash: unittest.IdentifierFixture(),
		Timestamp:   time.Now().UTC(),
	}
	for _, option := range options {
		option(&block)
	}
	return &block
}

func WithBlockView(view uint64) func(*model.Block) {
	return func(block *model.Block) {
		block.View = view
	}
}

func WithBlockProposer(proposerID quilt.Identifier) func(*model.Block) {
	return func(block *model.Block) {
		block.ProposerID = proposerID
	}
}

func WithParentBlock(parent *model.Block) func(*model.Block) {
	return func(block *model.Block) {
		block.QC.BlockID = parent.BlockID
		block.QC.View = parent.View
		block.Height = parent.Height + 1
	}
}

func WithParentSigners(signerIDs []quilt.Identifier) func(*model.Block) {
	return func(block *model.Block) {
		block.QC.SignerIDs = signerIDs
	}
}

func WithBlockQC(qc *quilt.QuorumCertificate) func(*model.Block) {
	return func(block *model.Block) {
		block.QC = qc
	}
}

func MakeProposal(options ...func(*model.Proposal)) *model.Proposal {
	proposal := model.Proposal{
		Block:   MakeBlock(),
		SigData: unittest.SignatureFixture(),
	}
	for _, option := range options {
		option(&proposal)
	}
	return &proposal
}

func WithBlock(block *model.Block) func(*model.Proposal) {
	return func(proposal *model.Proposal) {
		proposal.Block = block
	}
}

func MakeQC(options ...func(*quilt.QuorumCertificate)) *quilt.QuorumCertificate {
	qc := quilt.QuorumCertificate{
		View:      uint64(rand.Intn(1000) + 10),
		BlockID:   unittest.IdentifierFixture(),
		SignerIDs: unittest.IdentifierListFixture(3),
		SigData:   unittest.SignatureFixture(),
	}
	for _, option := range options {
		option(&qc)
	}
	return &qc
}

func WithQCView(view uint64) func(*quilt.QuorumCertificate) {
	return func(qc *quilt.QuorumCertificate) {
		qc.View = view
	}
}

func WithQCBlock(block *model.Block) func(*quilt.QuorumCertificate) {
	return func(qc *quilt.QuorumCertificate) {
		qc.View = block.View
		qc.BlockID = block.BlockID
	}
}

func WithQCSigners(signerIDs []quilt.Identifier) func(*quilt.QuorumCertificate) {
	return func(qc *quilt.QuorumCertificate) {
		qc.SignerIDs = signerIDs
	}
}

func MakeNewView(options ...func(*model.NewView)) *model.NewView {
	newView := model.NewView{
		View:      uint64(rand.Intn(1000) + 10),
		SignerID:  unittest.IdentifierFixture(),
		HighestQC: MakeQC(),
	}
	for _, option := range options {
		option(&newView)
	}
	return &newView
}

func MakeVote(options ...func(*model.Vote)) *model.Vote {
	vote := model.Vote{
		View:     uint64(rand.Intn(1000) + 10),
		BlockID:  unittest.IdentifierFixture(),
		SignerID: unittest.IdentifierFixture(),
		SigData:  unittest.SignatureFixture(),
	}
	for _, option := range options {
		option(&vote)
	}
	return &vote
}

func WithVoteBlock(block *model.Block) func(*model.Vote) {
	return func(vote *model.Vote) {
		vote.View = block.View
		vote.BlockID = block.BlockID
	}
}

func WithVoteView(view uint64) func(*model.Vote) {
	return func(vote *model.Vote) {
		vote.View = view
	}
}

func WithVoteBlockID(blockID quilt.Identifier) func(*model.Vote) {
	return func(vote *model.Vote) {
		vote.BlockID = blockID
	}
}

func WithVoteSignerID(signerID quilt.Identifier) func(*model.Vote) {
	return func(vote *model.Vote) {
		vote.SignerID = signerID
	}
}
