package timeout

import (
	"math"
	"time"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
)

// Controller implements a truncated exponential backoff for view
// durations:
//
//	duration(r) = t_min * b ^ min((r-k) * θ(r-k), c), where c = log_b (t_max / t_min)
//
//	k - number of views we expect to fail on the happy path before
//	    timeouts start increasing
//	b - timeout adjustment factor
//	r - failed views counter
//	θ - Heaviside step function
//	t_min/t_max - minimum/maximum view duration
//
// By adjusting `r` on observing progress or lack thereof, view durations
// grow exponentially on repeated timeouts of the same (or consecutive
// failing) leaders and shrink exponentially again on progress.
type Controller struct {
	cfg            Config
	timer          *time.Timer
	timeoutChannel <-chan time.Time
	maxExponent    float64 // derived from the maximum view duration
	r              uint64  // failed views counter
}

// NewController creates a new Controller.
func NewController(timeoutConfig Config) *Controller {
	// the initial value for the timeout channel is a closed channel which
	// returns immediately; this prevents indefinite blocking when no
	// timeout has been started
	startChannel := make(chan time.Time)
	close(startChannel)

	// we need log_b(t_max/t_min); apply the change-of-base transformation
	// as the standard library only provides natural logarithms
	maxExponent := math.Log(timeoutConfig.MaxReplicaTimeout/timeoutConfig.MinReplicaTimeout) /
		math.Log(timeoutConfig.TimeoutAdjustmentFactor)

	tc := Controller{
		cfg:            timeoutConfig,
		timeoutChannel: startChannel,
		maxExponent:    maxExponent,
	}
	return &tc
}

// DefaultController returns a Controller with default configuration.
func DefaultController() *Controller {
	return NewController(DefaultConfig())
}

// Channel returns a channel that will receive the timeout event. A new
// channel is created on each call of StartTimeout.
func (t *Controller) Channel() <-chan time.Time {
	return t.timeoutChannel
}

// StartTimeout starts the timer for the given view and returns the timer
// info. Any previously running timer is stopped.
func (t *Controller) StartTimeout(view uint64) model.TimerInfo {
	if t.timer != nil {
		t.timer.Stop()
	}
	duration := t.ReplicaTimeout()
	timer := time.NewTimer(duration)
	t.timer = timer
	t.timeoutChannel = timer.C
	return model.TimerInfo{View: view, StartTime: time.Now().UTC(), Duration: duration}
}

// ReplicaTimeout returns the duration of the current view before timing
// out.
func (t *Controller) ReplicaTimeout() time.Duration {
	if t.r <= t.cfg.HappyPathMaxRoundFailures {
		return time.Duration(t.cfg.MinReplicaTimeout) * time.Millisecond
	}
	r := float64(t.r - t.cfg.HappyPathMaxRoundFailures)
	if r >= t.maxExponent {
		return time.Duration(t.cfg.MaxReplicaTimeout) * time.Millisecond
	}
	duration := t.cfg.MinReplicaTimeout * math.Pow(t.cfg.TimeoutAdjustmentFactor, r)
	return time.Duration(duration) * time.Millisecond
}

// OnTimeout indicates to the Controller that the view ended with a
// timeout; subsequent views run with an increased duration.
func (t *Controller) OnTimeout() {
	if float64(t.r) >= t.maxExponent+float64(t.cfg.HappyPathMaxRoundFailures) {
		return
	}
	t.r++
}

// OnProgressBeforeTimeout indicates to the Controller that progress was
// made before the timeout fired; subsequent views run with a decreased
// duration.
func (t *Controller) OnProgressBeforeTimeout() {
	if t.r > 0 {
		t.r--
	}
}
