// Package builder assembles block proposals from the pending command pool.
package builder

import (
	"fmt"
	"time"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
	"github.com/quiltchain/quilt-go/module/mempool"
	"github.com/quiltchain/quilt-go/storage"
)

// Config holds the payload assembly policy.
type Config struct {
	// MaxPayloadSize is the maximum number of commands per block.
	MaxPayloadSize uint
	// AllowEmptyBlocks controls whether blocks without commands are built.
	// Empty blocks keep view progression observable on an idle shard.
	AllowEmptyBlocks bool
}

func DefaultConfig() Config {
	return Config{
		MaxPayloadSize:   500,
		AllowEmptyBlocks: true,
	}
}

type Option func(*Config)

func WithMaxPayloadSize(size uint) Option {
	return func(cfg *Config) {
		cfg.MaxPayloadSize = size
	}
}

func WithEmptyBlocksDisabled() Option {
	return func(cfg *Config) {
		cfg.AllowEmptyBlocks = false
	}
}

// Builder implements module.Builder on top of the block store and the
// command mempool.
type Builder struct {
	blocks storage.Blocks
	pool   mempool.Commands
	cfg    Config
}

var _ module.Builder = (*Builder)(nil)

func New(blocks storage.Blocks, pool mempool.Commands, options ...Option) *Builder {
	cfg := DefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	b := &Builder{
		blocks: blocks,
		pool:   pool,
		cfg:    cfg,
	}
	return b
}

// BuildOn builds and stores a block extending the block certified by the
// given QC. Commands are drawn from the mempool in admission order but not
// removed; they leave the pool only when a block carrying them commits.
func (b *Builder) BuildOn(qc *quilt.QuorumCertificate, setter func(*quilt.Header) error) (*quilt.Block, error) {

	parent, err := b.blocks.ByID(qc.BlockID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve parent %x: %w", qc.BlockID, err)
	}

	batch := b.pool.NextBatch(b.cfg.MaxPayloadSize)
	if len(batch) == 0 && !b.cfg.AllowEmptyBlocks {
		return nil, module.ErrNoCommands
	}

	header := &quilt.Header{
		ShardID:   parent.Header.ShardID,
		ParentID:  qc.BlockID,
		Height:    parent.Header.Height + 1,
		Timestamp: time.Now().UTC(),
	}
	block := &quilt.Block{
		Header:  header,
		Justify: qc,
	}
	block.SetPayload(quilt.Payload{Commands: batch})

	// the setter fills in the consensus fields (view, epoch, proposer)
	err = setter(header)
	if err != nil {
		return nil, fmt.Errorf("could not apply setter: %w", err)
	}

	err = b.blocks.Store(block)
	if err != nil {
		return nil, fmt.Errorf("could not store built block: %w", err)
	}

	return block, nil
}
