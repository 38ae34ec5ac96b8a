package quilt

// QuorumCertificate represents a quorum certificate for a block proposal.
// A quorum certificate is the aggregated form of votes from a quorum of the
// committee and proves the validity of the block it certifies. It is
// immutable once formed.
type QuorumCertificate struct {
	// View is the view in which the certified block was proposed.
	View uint64
	// BlockID is the ID of the certified block.
	BlockID Identifier
	// SignerIDs holds the node IDs of all committee members whose vote is
	// included in the aggregated signature, in canonical order and without
	// duplicates.
	SignerIDs []Identifier
	// SigData is the aggregated BLS signature over the vote message for
	// (View, BlockID).
	SigData []byte
}

// ID returns a unique identifier for the quorum certificate.
func (qc *QuorumCertificate) ID() Identifier {
	return MakeID(qc)
}

// GenesisQC returns the certificate for the genesis block of a shard. The
// genesis block is committed by construction, so its certificate is a
// protocol constant without signatures.
func GenesisQC(genesisID Identifier) *QuorumCertificate {
	return &QuorumCertificate{
		View:    0,
		BlockID: genesisID,
	}
}
