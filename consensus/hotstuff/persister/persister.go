// Package persister durably stores the minimal consensus state a replica
// needs to recover from a crash without violating protocol rules: the
// safety data guarding against double votes and lock regressions, and the
// liveness data anchoring view progression.
package persister

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/storage/badger/operation"
)

// Persister implements hotstuff.Persister on a badger DB, keyed per shard.
type Persister struct {
	db      *badger.DB
	shardID quilt.ShardID
}

var _ hotstuff.Persister = (*Persister)(nil)

// New creates a persister for the given shard.
func New(db *badger.DB, shardID quilt.ShardID) *Persister {
	p := &Persister{
		db:      db,
		shardID: shardID,
	}
	return p
}

// GetSafetyData will retrieve the last persisted safety data.
// Returns storage.ErrNotFound on an unbootstrapped database.
func (p *Persister) GetSafetyData() (*hotstuff.SafetyData, error) {
	var safetyData hotstuff.SafetyData
	err := p.db.View(operation.RetrieveSafetyData(p.shardID, &safetyData))
	return &safetyData, err
}

// PutSafetyData persists the given safety data. The write is durable when
// the call returns; only then may a vote be released.
func (p *Persister) PutSafetyData(safetyData *hotstuff.SafetyData) error {
	return p.db.Update(operation.UpsertSafetyData(p.shardID, safetyData))
}

// GetLivenessData will retrieve the last persisted liveness data.
// Returns storage.ErrNotFound on an unbootstrapped database.
func (p *Persister) GetLivenessData() (*hotstuff.LivenessData, error) {
	var livenessData hotstuff.LivenessData
	err := p.db.View(operation.RetrieveLivenessData(p.shardID, &livenessData))
	return &livenessData, err
}

// PutLivenessData persists the given liveness data.
func (p *Persister) PutLivenessData(livenessData *hotstuff.LivenessData) error {
	return p.db.Update(operation.UpsertLivenessData(p.shardID, livenessData))
}
