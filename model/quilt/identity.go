package quilt

import (
	"bytes"
	"fmt"
	"sort"
)

// Identity represents one validator authorized to participate in consensus
// for an epoch. The identity list for an epoch is supplied by the committee
// registry collaborator and is read-only to the consensus core.
type Identity struct {
	// NodeID uniquely identifies the validator across epochs.
	NodeID Identifier
	// Address is the network address advertised by the validator.
	Address string
	// Weight is the validator's voting weight within the epoch.
	Weight uint64
	// PubKey is the serialized BLS public key used to verify the
	// validator's votes and proposals.
	PubKey []byte
}

func (iy *Identity) String() string {
	return fmt.Sprintf("%s@%s=%d", iy.NodeID, iy.Address, iy.Weight)
}

// ID returns the node ID, so identities can be indexed like other entities.
func (iy *Identity) ID() Identifier {
	return iy.NodeID
}

// IdentityList is a list of validator identities, canonically ordered by
// node ID. The canonical order must be identical across all honest
// validators, as leader selection is defined over it.
type IdentityList []*Identity

// Sort returns a copy of the list, sorted in canonical order.
func (il IdentityList) Sort() IdentityList {
	dup := make(IdentityList, len(il))
	copy(dup, il)
	sort.Slice(dup, func(i, j int) bool {
		return bytes.Compare(dup[i].NodeID[:], dup[j].NodeID[:]) < 0
	})
	return dup
}

// NodeIDs returns the node IDs of all identities in the list.
func (il IdentityList) NodeIDs() []Identifier {
	ids := make([]Identifier, 0, len(il))
	for _, identity := range il {
		ids = append(ids, identity.NodeID)
	}
	return ids
}

// ByNodeID returns the identity with the given node ID, if it exists.
func (il IdentityList) ByNodeID(nodeID Identifier) (*Identity, bool) {
	for _, identity := range il {
		if identity.NodeID == nodeID {
			return identity, true
		}
	}
	return nil, false
}

// Contains returns whether the list contains an identity with the node ID.
func (il IdentityList) Contains(nodeID Identifier) bool {
	_, ok := il.ByNodeID(nodeID)
	return ok
}

// TotalWeight returns the sum of all identity weights.
func (il IdentityList) TotalWeight() uint64 {
	var total uint64
	for _, identity := range il {
		total += identity.Weight
	}
	return total
}

// Count returns the number of identities in the list.
func (il IdentityList) Count() uint64 {
	return uint64(len(il))
}

// HasNodeID returns a filter for identities with one of the given node
// IDs.
func HasNodeID(nodeIDs ...Identifier) func(*Identity) bool {
	lookup := make(map[Identifier]struct{}, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		lookup[nodeID] = struct{}{}
	}
	return func(identity *Identity) bool {
		_, ok := lookup[identity.NodeID]
		return ok
	}
}

// Filter returns a new list containing only identities for which the given
// filter returns true. Canonical order is preserved.
func (il IdentityList) Filter(keep func(*Identity) bool) IdentityList {
	var filtered IdentityList
	for _, identity := range il {
		if keep(identity) {
			filtered = append(filtered, identity)
		}
	}
	return filtered
}
