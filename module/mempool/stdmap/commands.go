// Package stdmap implements the command mempool on a mutex-guarded map.
package stdmap

import (
	"sort"
	"sync"

	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module/mempool"
)

type entry struct {
	cmd quilt.Command
	seq uint64
}

// Commands implements mempool.Commands. Admission order is preserved so
// that batches are assembled first-come-first-served.
type Commands struct {
	mu      sync.RWMutex
	limit   uint
	nextSeq uint64
	entries map[quilt.Identifier]entry
}

var _ mempool.Commands = (*Commands)(nil)

// NewCommands creates a command pool holding at most limit commands.
func NewCommands(limit uint) *Commands {
	c := &Commands{
		limit:   limit,
		entries: make(map[quilt.Identifier]entry),
	}
	return c
}

func (c *Commands) Add(cmd quilt.Command) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if uint(len(c.entries)) >= c.limit {
		return false
	}
	cmdID := cmd.ID()
	if _, known := c.entries[cmdID]; known {
		return false
	}
	c.entries[cmdID] = entry{cmd: cmd, seq: c.nextSeq}
	c.nextSeq++
	return true
}

func (c *Commands) Has(cmdID quilt.Identifier) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, known := c.entries[cmdID]
	return known
}

func (c *Commands) Rem(cmdID quilt.Identifier) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, known := c.entries[cmdID]
	if known {
		delete(c.entries, cmdID)
	}
	return known
}

func (c *Commands) NextBatch(limit uint) []quilt.Command {
	c.mu.RLock()
	defer c.mu.RUnlock()
	all := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].seq < all[j].seq
	})
	if uint(len(all)) > limit {
		all = all[:limit]
	}
	batch := make([]quilt.Command, 0, len(all))
	for _, e := range all {
		batch = append(batch, e.cmd)
	}
	return batch
}

func (c *Commands) Size() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint(len(c.entries))
}

func (c *Commands) PruneByReferenceHeight(height uint64) uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	var pruned uint
	for cmdID, e := range c.entries {
		if e.cmd.ReferenceHeight < height {
			delete(c.entries, cmdID)
			pruned++
		}
	}
	return pruned
}
