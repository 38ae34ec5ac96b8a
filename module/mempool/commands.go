// Package mempool holds the in-memory pool of pending ledger commands a
// leader draws from when assembling a block payload. Commands stay in the
// pool while in-flight proposals carry them; they are only removed once a
// block containing them commits, or when they expire.
package mempool

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Commands is the pool of pending ledger commands.
type Commands interface {

	// Add adds the command to the pool. It returns false if the command
	// was already known or the pool is at capacity.
	Add(cmd quilt.Command) bool

	// Has checks whether the command with the given ID is in the pool.
	Has(cmdID quilt.Identifier) bool

	// Rem removes the command with the given ID from the pool, returning
	// whether it was known.
	Rem(cmdID quilt.Identifier) bool

	// NextBatch returns up to limit commands in admission order, without
	// removing them. Commands are only removed once committed, so a batch
	// proposed on a fork that never commits is proposed again.
	NextBatch(limit uint) []quilt.Command

	// Size returns the number of pending commands.
	Size() uint

	// PruneByReferenceHeight drops all commands whose reference height is
	// below the given height and returns how many were dropped.
	PruneByReferenceHeight(height uint64) uint
}
