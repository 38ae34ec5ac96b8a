package pacemaker

import (
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker/timeout"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// ActivePaceMaker implements hotstuff.PaceMaker. It is an aggressive
// pacemaker: receiving a QC for the current or a later view fast-forwards
// past the remaining timeout, while a view that fails to certify a block
// ends after a timeout that backs off exponentially on repeated failures.
// Progress is defined as entering a view V for which the replica knows a
// QC with V = QC.View + 1.
type ActivePaceMaker struct {
	timeoutControl *timeout.Controller
	notifier       hotstuff.Consumer
	persist        hotstuff.Persister
	livenessData   *hotstuff.LivenessData
	started        *atomic.Bool
}

var _ hotstuff.PaceMaker = (*ActivePaceMaker)(nil)

// New creates a new ActivePaceMaker. The liveness data carries the view to
// start from (recovered from the persister after a crash) and the newest
// known QC.
func New(
	livenessData *hotstuff.LivenessData,
	timeoutController *timeout.Controller,
	notifier hotstuff.Consumer,
	persist hotstuff.Persister,
) (*ActivePaceMaker, error) {
	if livenessData.CurrentView < 1 {
		return nil, model.NewConfigurationErrorf("cannot start pacemaker with view 0 (view 0 is reserved for the genesis block, which has no proposer)")
	}
	if livenessData.NewestQC == nil {
		return nil, model.NewConfigurationErrorf("cannot start pacemaker without a newest QC")
	}
	pm := ActivePaceMaker{
		livenessData:   livenessData,
		timeoutControl: timeoutController,
		notifier:       notifier,
		persist:        persist,
		started:        atomic.NewBool(false),
	}
	return &pm, nil
}

// updateLivenessData advances the current view and records the newest QC.
// The calling code guarantees that view numbers are strictly monotonously
// increasing; updateLivenessData panics as a last resort if the pacemaker
// is ever modified to violate this condition.
func (p *ActivePaceMaker) updateLivenessData(newView uint64, qc *quilt.QuorumCertificate) error {
	if newView <= p.livenessData.CurrentView {
		panic(fmt.Sprintf("cannot move from view %d to %d: view numbers must be strictly monotonously increasing",
			p.livenessData.CurrentView, newView))
	}

	p.livenessData.CurrentView = newView
	if qc != nil && qc.View > p.livenessData.NewestQC.View {
		p.livenessData.NewestQC = qc
	}
	err := p.persist.PutLivenessData(p.livenessData)
	if err != nil {
		return fmt.Errorf("could not persist liveness data: %w", err)
	}

	timerInfo := p.timeoutControl.StartTimeout(newView)
	p.notifier.OnStartingTimeout(timerInfo)
	return nil
}

// CurView returns the current view.
func (p *ActivePaceMaker) CurView() uint64 {
	return p.livenessData.CurrentView
}

// NewestQC returns the QC with the highest view observed by the pacemaker.
func (p *ActivePaceMaker) NewestQC() *quilt.QuorumCertificate {
	return p.livenessData.NewestQC
}

// TimeoutChannel returns the timeout channel for the current active
// timeout. The channel is replaced on every view change.
func (p *ActivePaceMaker) TimeoutChannel() <-chan time.Time {
	return p.timeoutControl.Channel()
}

// ProcessQC notifies the pacemaker of a new QC, which might allow it to
// fast-forward its view. QCs below the current view are stale and ignored.
func (p *ActivePaceMaker) ProcessQC(qc *quilt.QuorumCertificate) (*model.NewViewEvent, error) {
	if qc.View < p.CurView() {
		return nil, nil
	}

	p.timeoutControl.OnProgressBeforeTimeout()

	// qc.View = curView + k for k ≥ 0. A quorum of replicas has voted in
	// view qc.View, hence proceeded past it; we can safely skip ahead to
	// the view following the QC.
	newView := qc.View + 1
	err := p.updateLivenessData(newView, qc)
	if err != nil {
		return nil, err
	}

	p.notifier.OnQcTriggeredViewChange(qc, newView)
	return &model.NewViewEvent{View: newView}, nil
}

// OnTimeout advances to the next view after the current view's timer
// expired, with increased timeout for the subsequent views.
func (p *ActivePaceMaker) OnTimeout() (*model.NewViewEvent, error) {
	p.timeoutControl.OnTimeout()
	newView := p.CurView() + 1
	err := p.updateLivenessData(newView, nil)
	if err != nil {
		return nil, err
	}
	return &model.NewViewEvent{View: newView}, nil
}

// Start starts the pacemaker's timer for the current view. Idempotent.
func (p *ActivePaceMaker) Start() {
	if p.started.Swap(true) {
		return
	}
	timerInfo := p.timeoutControl.StartTimeout(p.CurView())
	p.notifier.OnStartingTimeout(timerInfo)
}
