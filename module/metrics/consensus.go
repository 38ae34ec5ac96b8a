package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ConsensusCollector holds the Prometheus collectors for the consensus
// engine of a single validator.
type ConsensusCollector struct {
	// current view of the local pacemaker
	currentView prometheus.Gauge

	// height of the latest committed block
	committedHeight prometheus.Gauge

	// number of committed blocks
	committedBlocks prometheus.Counter

	// number of views that ended with a local timeout instead of a QC
	timeouts prometheus.Counter

	// number of QCs this replica assembled from collected votes
	qcsConstructed prometheus.Counter

	// number of missing-ancestor sync requests issued
	syncRequests prometheus.Counter

	// current size of the command mempool
	mempoolSize prometheus.Gauge
}

// NewConsensusCollector creates the consensus collectors and registers them
// with the given registerer.
func NewConsensusCollector(registerer prometheus.Registerer) *ConsensusCollector {
	cc := &ConsensusCollector{
		currentView: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "current_view",
			Help:      "the current view of the local pacemaker",
		}),
		committedHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "committed_height",
			Help:      "the height of the latest committed block",
		}),
		committedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "committed_blocks_total",
			Help:      "the number of blocks committed since startup",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "timeouts_total",
			Help:      "the number of views that ended with a local timeout",
		}),
		qcsConstructed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "qcs_constructed_total",
			Help:      "the number of QCs assembled from collected votes",
		}),
		syncRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemHotstuff,
			Name:      "sync_requests_total",
			Help:      "the number of missing-ancestor block requests issued",
		}),
		mempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemMempool,
			Name:      "commands_size",
			Help:      "the number of commands pending in the mempool",
		}),
	}
	registerer.MustRegister(
		cc.currentView,
		cc.committedHeight,
		cc.committedBlocks,
		cc.timeouts,
		cc.qcsConstructed,
		cc.syncRequests,
		cc.mempoolSize,
	)
	return cc
}

// SetCurrentView reports the view the pacemaker just entered.
func (cc *ConsensusCollector) SetCurrentView(view uint64) {
	cc.currentView.Set(float64(view))
}

// BlockCommitted reports a block reaching committed status.
func (cc *ConsensusCollector) BlockCommitted(height uint64) {
	cc.committedHeight.Set(float64(height))
	cc.committedBlocks.Inc()
}

// CountTimeout reports a view ending with a local timeout.
func (cc *ConsensusCollector) CountTimeout() {
	cc.timeouts.Inc()
}

// CountQCConstructed reports a QC assembled by the local vote aggregator.
func (cc *ConsensusCollector) CountQCConstructed() {
	cc.qcsConstructed.Inc()
}

// CountSyncRequested reports a missing-ancestor block request.
func (cc *ConsensusCollector) CountSyncRequested() {
	cc.syncRequests.Inc()
}

// MempoolSize reports the current number of pending commands.
func (cc *ConsensusCollector) MempoolSize(size uint) {
	cc.mempoolSize.Set(float64(size))
}
