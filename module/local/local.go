// Package local implements the node's local identity: its identifier and
// staking key, used for signing consensus messages.
package local

import (
	"fmt"

	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
)

type Local struct {
	nodeID quilt.Identifier
	sk     *bls.PrivateKey
	pub    []byte
}

var _ module.Local = (*Local)(nil)

func New(nodeID quilt.Identifier, sk *bls.PrivateKey) (*Local, error) {
	pub, err := sk.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("could not derive public key: %w", err)
	}
	l := &Local{
		nodeID: nodeID,
		sk:     sk,
		pub:    pub,
	}
	return l, nil
}

func (l *Local) NodeID() quilt.Identifier {
	return l.nodeID
}

func (l *Local) Sign(msg []byte) ([]byte, error) {
	return l.sk.Sign(msg)
}

func (l *Local) PublicKey() []byte {
	return l.pub
}
