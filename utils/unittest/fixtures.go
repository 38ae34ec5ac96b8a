package unittest

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// IdentifierFixture returns a random identifier.
func IdentifierFixture() quilt.Identifier {
	var id quilt.Identifier
	_, err := rand.Read(id[:])
	if err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return id
}

// IdentifierListFixture returns a list of random identifiers.
func IdentifierListFixture(n int) []quilt.Identifier {
	ids := make([]quilt.Identifier, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, IdentifierFixture())
	}
	return ids
}

// IdentityFixture returns a committee identity with a real BLS key pair.
// The private key can be recovered with PrivateKeyFixture(nodeID).
func IdentityFixture() *quilt.Identity {
	nodeID := IdentifierFixture()
	sk := PrivateKeyFixture(nodeID)
	pub, err := sk.PublicKey()
	if err != nil {
		panic(fmt.Sprintf("could not derive public key: %v", err))
	}
	return &quilt.Identity{
		NodeID:  nodeID,
		Address: fmt.Sprintf("%s@example.com:1234", nodeID.String()[:8]),
		Weight:  1,
		PubKey:  pub,
	}
}

// IdentityListFixture returns a canonical-ordered list of n identities.
func IdentityListFixture(n int) quilt.IdentityList {
	identities := make(quilt.IdentityList, 0, n)
	for i := 0; i < n; i++ {
		identities = append(identities, IdentityFixture())
	}
	return identities.Sort()
}

// PrivateKeyFixture deterministically derives the BLS private key matching
// the public key of the identity fixture with the given node ID.
func PrivateKeyFixture(nodeID quilt.Identifier) *bls.PrivateKey {
	sk, err := bls.GenerateKey(nodeID[:])
	if err != nil {
		panic(fmt.Sprintf("could not generate key: %v", err))
	}
	return sk
}

// CommandFixture returns a command with a random script.
func CommandFixture() quilt.Command {
	script := make([]byte, 32)
	_, _ = rand.Read(script)
	return quilt.Command{Script: script}
}

// PayloadFixture returns a payload with n random commands.
func PayloadFixture(n int) quilt.Payload {
	payload := quilt.Payload{}
	for i := 0; i < n; i++ {
		payload.Commands = append(payload.Commands, CommandFixture())
	}
	return payload
}

// BlockHeaderFixture returns an arbitrary block header.
func BlockHeaderFixture() *quilt.Header {
	height := uint64(mrand.Intn(100) + 1)
	return BlockHeaderWithParentFixture(&quilt.Header{
		ShardID:     "test-shard",
		Height:      height - 1,
		View:        height - 1,
		PayloadHash: IdentifierFixture(),
		Timestamp:   time.Now().UTC(),
	})
}

// BlockHeaderWithParentFixture returns a header extending the given parent.
func BlockHeaderWithParentFixture(parent *quilt.Header) *quilt.Header {
	return &quilt.Header{
		ShardID:     parent.ShardID,
		ParentID:    parent.ID(),
		Height:      parent.Height + 1,
		Epoch:       parent.Epoch,
		View:        parent.View + 1,
		ProposerID:  IdentifierFixture(),
		PayloadHash: IdentifierFixture(),
		Timestamp:   time.Now().UTC(),
	}
}

// BlockWithParentFixture returns a block with a random payload extending
// the given parent.
func BlockWithParentFixture(parent *quilt.Header) *quilt.Block {
	header := BlockHeaderWithParentFixture(parent)
	block := &quilt.Block{
		Header: header,
		Justify: &quilt.QuorumCertificate{
			View:    parent.View,
			BlockID: header.ParentID,
		},
	}
	block.SetPayload(PayloadFixture(3))
	return block
}

// BlockFixture returns a block with a random payload extending a random
// parent.
func BlockFixture() *quilt.Block {
	header := BlockHeaderFixture()
	payload := PayloadFixture(3)
	block := &quilt.Block{
		Header: header,
		Justify: &quilt.QuorumCertificate{
			View:    header.View - 1,
			BlockID: header.ParentID,
		},
	}
	block.SetPayload(payload)
	return block
}

// QuorumCertificateFixture returns a QC for a random block.
func QuorumCertificateFixture() *quilt.QuorumCertificate {
	return &quilt.QuorumCertificate{
		View:      uint64(1),
		BlockID:   IdentifierFixture(),
		SignerIDs: IdentifierListFixture(3),
		SigData:   SignatureFixture(),
	}
}

// SignatureFixture returns random bytes shaped like a signature.
func SignatureFixture() []byte {
	sig := make([]byte, 48)
	_, _ = rand.Read(sig)
	return sig
}
