package model

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Vote is a vote for a block proposal. Votes are ephemeral: they are
// consumed by QC aggregation and dropped once the view is certified or
// pruned.
type Vote struct {
	View     uint64
	BlockID  quilt.Identifier
	SignerID quilt.Identifier
	SigData  []byte
}

// ID returns the identifier for the vote.
func (v *Vote) ID() quilt.Identifier {
	return quilt.MakeID(v)
}

// VoteFromBlock constructs a vote for the given block with the given signer
// and signature.
func VoteFromBlock(block *Block, signerID quilt.Identifier, sigData []byte) *Vote {
	return &Vote{
		View:     block.View,
		BlockID:  block.BlockID,
		SignerID: signerID,
		SigData:  sigData,
	}
}
