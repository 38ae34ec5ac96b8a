package committees

import (
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// Static implements hotstuff.Replicas for a fixed committee within one
// epoch. The committee snapshot is externally supplied (derived from the
// base-layer registry) and read-only; epoch transitions are handled by
// swapping in a new Static instance and resetting the pacemaker.
type Static struct {
	epoch      uint64
	self       quilt.Identifier
	identities quilt.IdentityList
	threshold  uint64
}

var _ hotstuff.Replicas = (*Static)(nil)

// NewStatic creates a committee snapshot for the given epoch. The identity
// list is sorted into canonical order, so all committee members derive the
// same leader schedule regardless of the order the registry returned.
func NewStatic(epoch uint64, self quilt.Identifier, identities quilt.IdentityList) (*Static, error) {
	if len(identities) == 0 {
		return nil, model.NewConfigurationErrorf("empty committee for epoch %d", epoch)
	}
	sorted := identities.Sort()
	seen := make(map[quilt.Identifier]struct{}, len(sorted))
	for _, identity := range sorted {
		if identity.Weight == 0 {
			return nil, model.NewConfigurationErrorf("zero-weight committee member %v", identity.NodeID)
		}
		if _, ok := seen[identity.NodeID]; ok {
			return nil, model.NewConfigurationErrorf("duplicate committee member %v", identity.NodeID)
		}
		seen[identity.NodeID] = struct{}{}
	}
	static := &Static{
		epoch:      epoch,
		self:       self,
		identities: sorted,
		threshold:  hotstuff.ComputeWeightThresholdForBuildingQC(sorted.TotalWeight()),
	}
	return static, nil
}

// Identities returns the committee members for the given epoch in
// canonical order.
func (s *Static) Identities(epoch uint64) (quilt.IdentityList, error) {
	if epoch != s.epoch {
		return nil, fmt.Errorf("epoch %d outside committee snapshot (epoch %d): %w", epoch, s.epoch, model.ErrViewForUnknownEpoch)
	}
	return s.identities, nil
}

// Identity returns the identity of the given committee member.
func (s *Static) Identity(epoch uint64, participantID quilt.Identifier) (*quilt.Identity, error) {
	if epoch != s.epoch {
		return nil, fmt.Errorf("epoch %d outside committee snapshot (epoch %d): %w", epoch, s.epoch, model.ErrViewForUnknownEpoch)
	}
	identity, ok := s.identities.ByNodeID(participantID)
	if !ok {
		return nil, model.NewInvalidSignerErrorf("node %v is not a committee member in epoch %d", participantID, epoch)
	}
	return identity, nil
}

// LeaderForView selects the leader for the given view by round-robin over
// the canonically ordered committee. Round-robin is deterministic and
// fork-independent, so every honest replica computes the same leader.
func (s *Static) LeaderForView(view uint64) (quilt.Identifier, error) {
	leader := s.identities[view%uint64(len(s.identities))]
	return leader.NodeID, nil
}

// QuorumThreshold returns the minimum combined weight for building a QC.
func (s *Static) QuorumThreshold(epoch uint64) (uint64, error) {
	if epoch != s.epoch {
		return 0, fmt.Errorf("epoch %d outside committee snapshot (epoch %d): %w", epoch, s.epoch, model.ErrViewForUnknownEpoch)
	}
	return s.threshold, nil
}

// Epoch returns the epoch this snapshot is valid for.
func (s *Static) Epoch() uint64 {
	return s.epoch
}

// Self returns our own node identifier.
func (s *Static) Self() quilt.Identifier {
	return s.self
}
