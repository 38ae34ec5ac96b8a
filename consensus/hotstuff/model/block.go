package model

import (
	"time"

	"github.com/quiltchain/quilt-go/model/quilt"
)

// Block is the consensus engine's view of a block: the header meta-data
// relevant to the protocol, without the payload contents.
type Block struct {
	View        uint64
	BlockID     quilt.Identifier
	ProposerID  quilt.Identifier
	Height      uint64
	Epoch       uint64
	// QC is the block's justify: the quorum certificate for its parent.
	// Only the genesis block carries a nil QC.
	QC          *quilt.QuorumCertificate
	PayloadHash quilt.Identifier
	Timestamp   time.Time
}

// BlockFromQuilt converts a ledger block to its consensus representation.
func BlockFromQuilt(block *quilt.Block) *Block {
	header := block.Header
	return &Block{
		BlockID:     block.ID(),
		View:        header.View,
		ProposerID:  header.ProposerID,
		Height:      header.Height,
		Epoch:       header.Epoch,
		QC:          block.Justify,
		PayloadHash: header.PayloadHash,
		Timestamp:   header.Timestamp,
	}
}

// GenesisBlockFromQuilt returns the consensus model of a shard's genesis
// block.
func GenesisBlockFromQuilt(block *quilt.Block) *Block {
	genesis := BlockFromQuilt(block)
	genesis.QC = nil
	return genesis
}

// Proposal represents a signed block proposal.
type Proposal struct {
	Block   *Block
	SigData []byte
}

// ProposerVote extracts the proposer's vote from the proposal. The
// proposer's signature over its own block counts towards the quorum like
// any other vote.
func (p *Proposal) ProposerVote() *Vote {
	return &Vote{
		View:     p.Block.View,
		BlockID:  p.Block.BlockID,
		SignerID: p.Block.ProposerID,
		SigData:  p.SigData,
	}
}

// CertifiedBlock holds a block together with a QC pointing to it. A
// certified block satisfies Block.View == QC.View and
// Block.BlockID == QC.BlockID.
type CertifiedBlock struct {
	Block *Block
	QC    *quilt.QuorumCertificate
}

// ID returns the unique identifier for the certified block.
func (b *CertifiedBlock) ID() quilt.Identifier {
	return b.Block.BlockID
}

// View returns the view in which the block was proposed.
func (b *CertifiedBlock) View() uint64 {
	return b.Block.View
}
