package hotstuff

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// SafetyData is the safety-critical state of a replica: the highest view
// it has voted in and the block it is locked on. It must be persisted
// before a vote leaves the replica (votes imply a durability promise) and
// only ever advances, never regresses.
type SafetyData struct {
	// LastVotedView is the highest view in which this replica has voted.
	LastVotedView uint64
	// LockedView is the view of the locked block: the highest block this
	// replica has committed not to contradict by voting for a conflicting
	// fork.
	LockedView uint64
	// LockedBlockID is the ID of the locked block.
	LockedBlockID quilt.Identifier
}

// LivenessData is the liveness state of a replica: the current view and
// the newest QC it knows, shared with peers via new-view messages.
type LivenessData struct {
	// CurrentView is the view the replica is currently in.
	CurrentView uint64
	// NewestQC is the QC with the highest view known to this replica.
	NewestQC *quilt.QuorumCertificate
}

// Persister durably persists the minimal safety and liveness state needed
// to recover a replica after a crash without violating protocol rules.
type Persister interface {

	// GetSafetyData retrieves the last persisted safety data.
	GetSafetyData() (*SafetyData, error)

	// PutSafetyData persists the given safety data. It must be durable
	// before returning; a vote may only be released afterwards.
	PutSafetyData(safetyData *SafetyData) error

	// GetLivenessData retrieves the last persisted liveness data.
	GetLivenessData() (*LivenessData, error)

	// PutLivenessData persists the given liveness data.
	PutLivenessData(livenessData *LivenessData) error
}
