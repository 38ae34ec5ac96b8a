package consensus

import (
	"sync"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// pendingCache buffers received proposals until their ancestry is
// connected to the local chain. A proposal whose parent is still missing
// is dropped by the consensus core; once the parent arrives, the buffered
// children are replayed. The cache is bounded and evicts the oldest
// entries first.
type pendingCache struct {
	mu       sync.Mutex
	byID     map[quilt.Identifier]*model.Proposal
	byParent map[quilt.Identifier][]quilt.Identifier
	order    []quilt.Identifier
	limit    int
}

func newPendingCache(limit int) *pendingCache {
	return &pendingCache{
		byID:     make(map[quilt.Identifier]*model.Proposal),
		byParent: make(map[quilt.Identifier][]quilt.Identifier),
		limit:    limit,
	}
}

// Add buffers the proposal, keyed by its own ID and indexed by its parent.
// Duplicates are ignored.
func (c *pendingCache) Add(proposal *model.Proposal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blockID := proposal.Block.BlockID
	if _, exists := c.byID[blockID]; exists {
		return
	}
	for len(c.order) >= c.limit {
		c.evictOldest()
	}
	c.byID[blockID] = proposal
	parentID := proposal.Block.QC.BlockID
	c.byParent[parentID] = append(c.byParent[parentID], blockID)
	c.order = append(c.order, blockID)
}

// Remove drops the proposal with the given ID from the cache.
func (c *pendingCache) Remove(blockID quilt.Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(blockID)
}

// PopChildren removes and returns all buffered proposals whose parent is
// the given block.
func (c *pendingCache) PopChildren(parentID quilt.Identifier) []*model.Proposal {
	c.mu.Lock()
	defer c.mu.Unlock()

	childIDs := c.byParent[parentID]
	if len(childIDs) == 0 {
		return nil
	}
	children := make([]*model.Proposal, 0, len(childIDs))
	for _, childID := range childIDs {
		child, exists := c.byID[childID]
		if !exists {
			continue
		}
		children = append(children, child)
		c.remove(childID)
	}
	return children
}

// Size returns the number of buffered proposals.
func (c *pendingCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byID)
}

func (c *pendingCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	c.remove(c.order[0])
}

func (c *pendingCache) remove(blockID quilt.Identifier) {
	proposal, exists := c.byID[blockID]
	if !exists {
		return
	}
	delete(c.byID, blockID)

	parentID := proposal.Block.QC.BlockID
	siblings := c.byParent[parentID]
	for i, siblingID := range siblings {
		if siblingID == blockID {
			c.byParent[parentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(c.byParent[parentID]) == 0 {
		delete(c.byParent, parentID)
	}
	for i, orderedID := range c.order {
		if orderedID == blockID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
