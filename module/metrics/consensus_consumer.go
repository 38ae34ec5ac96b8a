package metrics

import (
	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/notifications"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// ConsensusConsumer feeds consensus notifications into the Prometheus
// collectors. It is subscribed to the notification distributor next to the
// logging consumer.
type ConsensusConsumer struct {
	notifications.NoopConsumer
	collector *ConsensusCollector
}

var _ hotstuff.Consumer = (*ConsensusConsumer)(nil)

func NewConsensusConsumer(collector *ConsensusCollector) *ConsensusConsumer {
	return &ConsensusConsumer{collector: collector}
}

func (c *ConsensusConsumer) OnEnteringView(view uint64, _ quilt.Identifier) {
	c.collector.SetCurrentView(view)
}

func (c *ConsensusConsumer) OnFinalizedBlock(block *model.Block) {
	c.collector.BlockCommitted(block.Height)
}

func (c *ConsensusConsumer) OnReachedTimeout(model.TimerInfo) {
	c.collector.CountTimeout()
}

func (c *ConsensusConsumer) OnQcConstructedFromVotes(*quilt.QuorumCertificate) {
	c.collector.CountQCConstructed()
}

func (c *ConsensusConsumer) OnSyncRequested(quilt.Identifier, uint64) {
	c.collector.CountSyncRequested()
}
