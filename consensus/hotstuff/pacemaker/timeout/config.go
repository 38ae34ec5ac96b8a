package timeout

import (
	"time"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

// Config contains the configuration parameters for the view timeout
// controller.
type Config struct {
	// MinReplicaTimeout is the minimum view duration [milliseconds]. Views
	// on the happy path use this duration.
	MinReplicaTimeout float64
	// MaxReplicaTimeout is the maximum view duration [milliseconds]; the
	// backoff never exceeds it.
	MaxReplicaTimeout float64
	// TimeoutAdjustmentFactor is the multiplicative factor for adjusting
	// the timeout duration on repeated failures (and for relaxing it again
	// on progress). Must be strictly larger than 1.
	TimeoutAdjustmentFactor float64
	// HappyPathMaxRoundFailures is the number of failed views tolerated
	// before timeouts start growing exponentially.
	HappyPathMaxRoundFailures uint64
}

// DefaultConfig returns the default timeout configuration.
func DefaultConfig() Config {
	return Config{
		MinReplicaTimeout:         1000,
		MaxReplicaTimeout:         60000,
		TimeoutAdjustmentFactor:   1.5,
		HappyPathMaxRoundFailures: 3,
	}
}

// NewConfig creates a validated timeout configuration.
func NewConfig(minReplicaTimeout, maxReplicaTimeout time.Duration, adjustmentFactor float64, happyPathMaxRoundFailures uint64) (Config, error) {
	if minReplicaTimeout <= 0 {
		return Config{}, model.NewConfigurationErrorf("minReplicaTimeout must be positive")
	}
	if maxReplicaTimeout < minReplicaTimeout {
		return Config{}, model.NewConfigurationErrorf("maxReplicaTimeout cannot be smaller than minReplicaTimeout")
	}
	if adjustmentFactor <= 1 {
		return Config{}, model.NewConfigurationErrorf("timeoutAdjustmentFactor must be strictly larger than 1")
	}
	cfg := Config{
		MinReplicaTimeout:         float64(minReplicaTimeout.Milliseconds()),
		MaxReplicaTimeout:         float64(maxReplicaTimeout.Milliseconds()),
		TimeoutAdjustmentFactor:   adjustmentFactor,
		HappyPathMaxRoundFailures: happyPathMaxRoundFailures,
	}
	return cfg, nil
}
