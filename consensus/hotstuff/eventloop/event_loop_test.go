package eventloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/mocks"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

type loopFixture struct {
	handler *mocks.EventHandler
	loop    *EventLoop
	timeout chan time.Time
	cancel  context.CancelFunc
}

func newLoopFixture(t *testing.T) *loopFixture {
	f := &loopFixture{
		timeout: make(chan time.Time),
	}
	f.handler = mocks.NewEventHandler(t)
	f.handler.On("Start").Return(nil).Once()
	f.handler.On("TimeoutChannel").Return(func() <-chan time.Time { return f.timeout }).Maybe()

	var err error
	f.loop, err = New(unittest.Logger(), f.handler)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	t.Cleanup(cancel)
	f.loop.Start(ctx)

	select {
	case <-f.loop.Ready():
	case <-time.After(time.Second):
		t.Fatal("event loop did not become ready")
	}
	return f
}

func TestEventLoop_RoutesEvents(t *testing.T) {
	f := newLoopFixture(t)
	processed := atomic.NewInt32(0)

	proposal := helper.MakeProposal()
	f.handler.On("OnReceiveProposal", proposal).Run(func(mock.Arguments) {
		processed.Inc()
	}).Return(nil).Once()
	f.loop.SubmitProposal(proposal)

	qc := helper.MakeQC()
	f.handler.On("OnQCConstructed", qc).Run(func(mock.Arguments) {
		processed.Inc()
	}).Return(nil).Once()
	f.loop.SubmitTrustedQC(qc)

	newView := helper.MakeNewView()
	f.handler.On("OnReceiveNewView", newView).Run(func(mock.Arguments) {
		processed.Inc()
	}).Return(nil).Once()
	f.loop.SubmitNewView(newView)

	require.Eventually(t, func() bool { return processed.Load() == 3 }, time.Second, 5*time.Millisecond)
}

// TestEventLoop_DuplicateProposalsDropped verifies the intake dedup: the
// same proposal arriving twice reaches the handler once.
func TestEventLoop_DuplicateProposalsDropped(t *testing.T) {
	f := newLoopFixture(t)
	processed := atomic.NewInt32(0)

	proposal := helper.MakeProposal()
	f.handler.On("OnReceiveProposal", proposal).Run(func(mock.Arguments) {
		processed.Inc()
	}).Return(nil).Once()

	f.loop.SubmitProposal(proposal)
	f.loop.SubmitProposal(proposal)

	require.Eventually(t, func() bool { return processed.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool { return processed.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestEventLoop_TimeoutTriggersHandler(t *testing.T) {
	f := newLoopFixture(t)
	fired := make(chan struct{})

	f.handler.On("OnLocalTimeout").Run(func(mock.Arguments) {
		close(fired)
	}).Return(nil).Once()

	f.timeout <- time.Now()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timeout was not processed")
	}
}

func TestEventLoop_StopsOnCancel(t *testing.T) {
	f := newLoopFixture(t)
	f.cancel()

	select {
	case <-f.loop.Done():
	case <-time.After(time.Second):
		t.Fatal("event loop did not stop")
	}
	require.NoError(t, f.loop.Err())
}

// TestEventLoop_StopsOnHandlerError verifies that a fatal handler error
// terminates the loop and is surfaced via Err.
func TestEventLoop_StopsOnHandlerError(t *testing.T) {
	f := newLoopFixture(t)

	proposal := helper.MakeProposal()
	f.handler.On("OnReceiveProposal", proposal).Return(assertableError{}).Once()
	f.loop.SubmitProposal(proposal)

	select {
	case <-f.loop.Done():
	case <-time.After(time.Second):
		t.Fatal("event loop did not stop")
	}
	require.Error(t, f.loop.Err())
}

type assertableError struct{}

func (assertableError) Error() string { return "handler failure" }
