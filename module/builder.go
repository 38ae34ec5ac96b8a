package module

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Builder assembles new blocks on top of the certified chain. It is used
// by the consensus leader to produce proposals; signing and broadcasting
// are the consensus core's job.
type Builder interface {

	// BuildOn builds and stores a new block extending the block certified
	// by the given QC, carrying the QC as its justify. The setter finalizes
	// the consensus fields of the header (view, epoch, proposer) before
	// the block is stored.
	// Error returns:
	//   - ErrNoCommands if the mempool is empty and the builder is
	//     configured to not build empty blocks
	BuildOn(qc *quilt.QuorumCertificate, setter func(*quilt.Header) error) (*quilt.Block, error)
}
