package verification

import (
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Verifier verifies BLS signatures on votes and quorum certificates
// against the committee members' registered public keys.
type Verifier struct{}

var _ hotstuff.Verifier = (*Verifier)(nil)

// NewVerifier creates a stateless signature verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyVote verifies the validity of a single signature from a vote.
// Error returns:
//   - model.ErrInvalidSignature if the signature is invalid
//   - unexpected errors are symptoms of an internal bug or malformed key
//     material
func (v *Verifier) VerifyVote(voter *quilt.Identity, sigData []byte, view uint64, blockID quilt.Identifier) error {
	msg := MakeVoteMessage(view, blockID)
	err := bls.Verify(voter.PubKey, msg, sigData)
	if err != nil {
		return fmt.Errorf("signature of %x on block %x is invalid: %w", voter.NodeID, blockID, model.ErrInvalidSignature)
	}
	return nil
}

// VerifyQC verifies the validity of an aggregated signature on a QC. The
// caller has already established that the signer set forms a quorum; here
// we only check the cryptographic validity of the aggregate.
// Error returns:
//   - model.ErrInvalidSignature if the aggregated signature is invalid
func (v *Verifier) VerifyQC(signers quilt.IdentityList, sigData []byte, view uint64, blockID quilt.Identifier) error {
	if len(signers) == 0 {
		return model.NewInsufficientSignaturesErrorf("empty signer set for QC of block %x", blockID)
	}
	msg := MakeVoteMessage(view, blockID)
	pubKeys := make([][]byte, 0, len(signers))
	for _, signer := range signers {
		pubKeys = append(pubKeys, signer.PubKey)
	}
	err := bls.VerifyAggregate(pubKeys, msg, sigData)
	if err != nil {
		return fmt.Errorf("aggregated signature on block %x is invalid: %w", blockID, model.ErrInvalidSignature)
	}
	return nil
}
