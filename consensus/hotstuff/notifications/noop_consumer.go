package notifications

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// NoopConsumer is a no-op implementation of hotstuff.Consumer; it can be
// embedded by consumers that only care about a subset of notifications.
type NoopConsumer struct{}

var _ hotstuff.Consumer = (*NoopConsumer)(nil)

func NewNoopConsumer() *NoopConsumer {
	return &NoopConsumer{}
}

func (*NoopConsumer) OnBlockIncorporated(*model.Block) {}

func (*NoopConsumer) OnFinalizedBlock(*model.Block) {}

func (*NoopConsumer) OnDoubleProposeDetected(*model.Block, *model.Block) {}

func (*NoopConsumer) OnEventProcessed() {}

func (*NoopConsumer) OnEnteringView(uint64, quilt.Identifier) {}

func (*NoopConsumer) OnReceiveProposal(uint64, *model.Proposal) {}

func (*NoopConsumer) OnQcTriggeredViewChange(*quilt.QuorumCertificate, uint64) {}

func (*NoopConsumer) OnQcConstructedFromVotes(*quilt.QuorumCertificate) {}

func (*NoopConsumer) OnQcIncorporated(*quilt.QuorumCertificate) {}

func (*NoopConsumer) OnProposingBlock(*model.Proposal) {}

func (*NoopConsumer) OnVoting(*model.Vote) {}

func (*NoopConsumer) OnStartingTimeout(model.TimerInfo) {}

func (*NoopConsumer) OnReachedTimeout(model.TimerInfo) {}

func (*NoopConsumer) OnNewViewBroadcast(*model.NewView) {}

func (*NoopConsumer) OnDoubleVotingDetected(*model.Vote, *model.Vote) {}

func (*NoopConsumer) OnInvalidVoteDetected(*model.Vote) {}

func (*NoopConsumer) OnSyncRequested(quilt.Identifier, uint64) {}
