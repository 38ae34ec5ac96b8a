package quilt

import (
	"time"
)

// GenesisTime is the timestamp of all genesis blocks, chosen so that every
// validator derives an identical genesis block ID for a shard.
var GenesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Block includes the header, the payload, and the quorum certificate for
// the parent (the justify). A block is uniquely identified by the ID of its
// header. Whether a block is justified or committed is derived chain state,
// tracked by the block store as the chain advances, never by the proposer.
type Block struct {
	Header  *Header
	Payload *Payload
	// Justify is the quorum certificate for the parent block. It must
	// reference the direct parent (Justify.BlockID == Header.ParentID).
	// Only the genesis block carries a nil justify.
	Justify *QuorumCertificate
}

// Genesis creates the genesis block for the given shard. The genesis block
// is committed by construction and carries no justify.
func Genesis(shardID ShardID) *Block {
	payload := EmptyPayload()
	header := Header{
		ShardID:     shardID,
		ParentID:    ZeroID,
		Height:      0,
		Epoch:       0,
		View:        0,
		PayloadHash: payload.Hash(),
		Timestamp:   GenesisTime,
	}
	return &Block{
		Header:  &header,
		Payload: &payload,
	}
}

// SetPayload sets the payload and updates the payload hash.
func (b *Block) SetPayload(payload Payload) {
	b.Payload = &payload
	b.Header.PayloadHash = payload.Hash()
}

// Valid checks whether the block is valid bottom-up: the payload must match
// the payload hash and the justify, when present, must reference the parent.
func (b Block) Valid() bool {
	if b.Header.PayloadHash != b.Payload.Hash() {
		return false
	}
	if b.Justify == nil {
		return b.Header.Height == 0
	}
	return b.Justify.BlockID == b.Header.ParentID
}

// ID returns the ID of the header.
func (b Block) ID() Identifier {
	return b.Header.ID()
}

// BlockStatus represents the status of a block within the chain.
type BlockStatus int

const (
	// BlockStatusUnknown indicates that the block status is not known.
	BlockStatusUnknown BlockStatus = iota
	// BlockStatusProposed is the status of a stored but uncertified block.
	BlockStatusProposed
	// BlockStatusJustified is the status of a block with a known QC.
	BlockStatusJustified
	// BlockStatusCommitted is the status of a committed block.
	BlockStatusCommitted
)

// String returns the string representation of a block status.
func (s BlockStatus) String() string {
	return [...]string{"BLOCK_UNKNOWN", "BLOCK_PROPOSED", "BLOCK_JUSTIFIED", "BLOCK_COMMITTED"}[s]
}
