package hotstuff

import (
	"time"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// PaceMaker drives view progression, independently of which blocks get
// certified. It advances the view on two triggers:
//   - QC advancement: observing a QC for the current or a later view moves
//     the replica to the view following the QC (fast path).
//   - timeout advancement: when no QC forms within the view timeout, the
//     replica gives up on the view and moves to the next one; the timeout
//     duration backs off exponentially on repeated failures.
//
// Not concurrency safe: the PaceMaker is internal state of the event
// handler and must only be used by the single event loop goroutine.
type PaceMaker interface {

	// CurView returns the current view.
	CurView() uint64

	// NewestQC returns the QC with the highest view the pacemaker has
	// observed. The newest QC only ever advances, it never regresses.
	NewestQC() *quilt.QuorumCertificate

	// ProcessQC notifies the pacemaker of a new QC, which might cause a
	// view change. Stale QCs (below the current view) are ignored and
	// return (nil, nil).
	ProcessQC(qc *quilt.QuorumCertificate) (*model.NewViewEvent, error)

	// OnTimeout notifies the pacemaker that the current view's timer has
	// expired, advancing to the next view with increased timeout.
	OnTimeout() (*model.NewViewEvent, error)

	// TimeoutChannel returns the timeout channel for the current active
	// timeout. Each view change starts a fresh timer; the channel must be
	// re-obtained after each event.
	TimeoutChannel() <-chan time.Time

	// Start starts the pacemaker's first view timer.
	Start()
}
