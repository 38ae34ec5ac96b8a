package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// UpsertSafetyData stores the safety-critical consensus state of this
// replica for the given shard.
func UpsertSafetyData(shardID quilt.ShardID, safetyData *hotstuff.SafetyData) func(*badger.Txn) error {
	return upsert(makePrefix(codeSafetyData, shardID), safetyData)
}

// RetrieveSafetyData retrieves the safety-critical consensus state of this
// replica for the given shard.
func RetrieveSafetyData(shardID quilt.ShardID, safetyData *hotstuff.SafetyData) func(*badger.Txn) error {
	return retrieve(makePrefix(codeSafetyData, shardID), safetyData)
}

// UpsertLivenessData stores the liveness state of this replica for the
// given shard.
func UpsertLivenessData(shardID quilt.ShardID, livenessData *hotstuff.LivenessData) func(*badger.Txn) error {
	return upsert(makePrefix(codeLivenessData, shardID), livenessData)
}

// RetrieveLivenessData retrieves the liveness state of this replica for
// the given shard.
func RetrieveLivenessData(shardID quilt.ShardID, livenessData *hotstuff.LivenessData) func(*badger.Txn) error {
	return retrieve(makePrefix(codeLivenessData, shardID), livenessData)
}
