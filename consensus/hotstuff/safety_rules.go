package hotstuff

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

// SafetyRules enforces the voting and locking rules that prevent
// conflicting commits. It is the only component that produces votes, and
// it persists its safety-critical state before releasing each vote.
type SafetyRules interface {

	// ProduceVote decides whether to vote for the given proposal.
	// Returns:
	//   - (vote, nil): the proposal is safe to vote for. At most one vote
	//     is ever produced per view.
	//   - (nil, model.NoVoteError): the safety module refuses to vote for
	//     the proposal. Expected during normal operation, e.g. for
	//     proposals from the wrong leader, re-votes in a view already
	//     voted in, or justifies below the current lock.
	//
	// All other errors are unexpected and potential symptoms of corrupted
	// internal state or a failed persistence layer; the replica must not
	// continue voting before they are resolved.
	ProduceVote(proposal *model.Proposal, curView uint64) (*model.Vote, error)
}
