package quilt

import (
	"time"
)

// ShardID identifies one shard of the ledger. Each shard runs its own
// committee consensus; this core only ever deals with a single shard.
type ShardID string

// Header contains all meta-data for a block, as well as a hash of the block
// payload. A header is immutable once created; its ID doubles as the
// block's unique identifier.
type Header struct {
	// ShardID is the shard this block belongs to.
	ShardID ShardID
	// ParentID is the ID of this block's parent.
	ParentID Identifier
	// Height is the height of the block in the chain; the genesis block has
	// height zero and every block increments its parent's height by one.
	Height uint64
	// Epoch is the epoch the proposing committee was drawn from.
	Epoch uint64
	// View is the consensus view in which the block was proposed.
	View uint64
	// ProposerID is the node ID of the leader that proposed the block.
	ProposerID Identifier
	// PayloadHash is a hash of the block payload.
	PayloadHash Identifier
	// Timestamp is the time at which the block was proposed.
	Timestamp time.Time
}

// Body returns the header fields that are covered by the block ID. The
// fingerprint intentionally covers every field, as headers are immutable.
func (h Header) Body() interface{} {
	return struct {
		ShardID     ShardID
		ParentID    Identifier
		Height      uint64
		Epoch       uint64
		View        uint64
		ProposerID  Identifier
		PayloadHash Identifier
		Timestamp   uint64
	}{
		ShardID:     h.ShardID,
		ParentID:    h.ParentID,
		Height:      h.Height,
		Epoch:       h.Epoch,
		View:        h.View,
		ProposerID:  h.ProposerID,
		PayloadHash: h.PayloadHash,
		Timestamp:   uint64(h.Timestamp.UnixNano()),
	}
}

// ID returns a unique ID to singularly identify the header and its block.
func (h Header) ID() Identifier {
	return MakeID(h.Body())
}
