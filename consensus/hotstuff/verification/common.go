// Package verification implements the signature layer of consensus: it
// produces this replica's votes and proposals and verifies the votes and
// quorum certificates of other committee members.
package verification

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// MakeVoteMessage generates the message a replica signs when voting for a
// block. A proposer's signature over its own proposal is a vote over the
// same message, so the two are interchangeable during aggregation.
func MakeVoteMessage(view uint64, blockID quilt.Identifier) []byte {
	msg := quilt.MakeID(struct {
		BlockID quilt.Identifier
		View    uint64
	}{
		BlockID: blockID,
		View:    view,
	})
	return msg[:]
}
