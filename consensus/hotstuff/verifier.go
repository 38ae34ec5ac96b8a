package hotstuff

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Verifier verifies signatures on consensus messages against the
// committee's registered public keys.
type Verifier interface {

	// VerifyVote checks the signature of a vote message for the given view
	// and block against the voter's public key.
	// Error conditions:
	//   - model.ErrInvalidSignature if the signature does not verify
	VerifyVote(voter *quilt.Identity, sigData []byte, view uint64, blockID quilt.Identifier) error

	// VerifyQC checks the aggregated signature of a QC for the given view
	// and block against the public keys of the given signers.
	// Error conditions:
	//   - model.ErrInvalidSignature if the aggregate does not verify
	VerifyQC(signers quilt.IdentityList, sigData []byte, view uint64, blockID quilt.Identifier) error
}
