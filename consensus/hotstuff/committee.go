package hotstuff

import (
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Replicas provides the consensus engine's view of the validator committee
// for an epoch. The committee is externally derived from the base-layer
// registry and read-only to this core.
type Replicas interface {

	// Identities returns the legitimate consensus participants for the
	// given epoch, in canonical order and without duplicates.
	// Returns model.ErrViewForUnknownEpoch if no committee snapshot is
	// known for the epoch.
	Identities(epoch uint64) (quilt.IdentityList, error)

	// Identity returns the full identity for the given committee member.
	// Error conditions:
	//   - model.InvalidSignerError if participantID is not a committee
	//     member in the given epoch
	Identity(epoch uint64, participantID quilt.Identifier) (*quilt.Identity, error)

	// LeaderForView returns the identity of the designated leader for the
	// given view. The leader function is a pure, deterministic computation
	// over (committee, view), identical across all honest validators.
	// CAUTION: per the liveness requirement, the leader must be
	// fork-independent; a misbehaving node retains its proposer slots, its
	// proposals are simply invalid.
	LeaderForView(view uint64) (quilt.Identifier, error)

	// QuorumThreshold returns the minimum combined weight required for
	// building a QC in the given epoch.
	QuorumThreshold(epoch uint64) (uint64, error)

	// Epoch returns the epoch this committee snapshot is valid for.
	Epoch() uint64

	// Self returns our own node identifier.
	Self() quilt.Identifier
}

// ComputeWeightThresholdForBuildingQC returns the weight that is minimally
// required for building a QC: the smallest integer t such that
// t > 2/3 * totalWeight, which tolerates strictly less than 1/3 of the
// total weight being Byzantine.
func ComputeWeightThresholdForBuildingQC(totalWeight uint64) uint64 {
	// Formally, the minimally required weight is: 2 * Floor(totalWeight/3) + max(1, totalWeight mod 3)
	floorOneThird := totalWeight / 3 // integer division, includes floor
	res := 2 * floorOneThird
	divRemainder := totalWeight % 3
	if divRemainder <= 1 {
		res = res + 1
	} else {
		res += divRemainder
	}
	return res
}
