package votecollector

import (
	"errors"
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

var (
	// VoteForIncompatibleViewError is returned for votes whose view does
	// not match the collector's view. Such votes are symptoms of a routing
	// bug, not of Byzantine behavior.
	VoteForIncompatibleViewError = errors.New("vote for incompatible view")
	// VoteForIncompatibleBlockError is returned for votes within the
	// collector's view that reference a different block than the one the
	// collector is certifying. Expected when a leader equivocates.
	VoteForIncompatibleBlockError = errors.New("vote for incompatible block")
)

// EnsureVoteForBlock verifies that the vote is for the given block.
// Error returns:
//   - VoteForIncompatibleViewError if the vote is for a different view
//   - VoteForIncompatibleBlockError if the vote is for a different block
//     of the same view
func EnsureVoteForBlock(vote *model.Vote, block *model.Block) error {
	if vote.View != block.View {
		return fmt.Errorf("vote's view is %d while block's view is %d: %w", vote.View, block.View, VoteForIncompatibleViewError)
	}
	if vote.BlockID != block.BlockID {
		return fmt.Errorf("expected vote for block %x but got %x: %w", block.BlockID, vote.BlockID, VoteForIncompatibleBlockError)
	}
	return nil
}
