package metrics

// Prometheus metric namespaces and subsystems.
const (
	namespaceConsensus = "quilt_consensus"

	subsystemHotstuff = "hotstuff"
	subsystemMempool  = "mempool"
)
