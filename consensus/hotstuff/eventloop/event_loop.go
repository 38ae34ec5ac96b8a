// Package eventloop serializes all inbound consensus events onto the
// single goroutine that owns the protocol state machine.
package eventloop

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// proposals seen recently; duplicates from gossip are dropped at intake
const dedupCacheSize = 1000

// EventLoop drives the event handler. Proposals, QCs and new-view
// messages are submitted from any goroutine and processed strictly
// sequentially; view timeouts interleave with them on the same goroutine,
// taking priority over queued events.
type EventLoop struct {
	log          zerolog.Logger
	eventHandler hotstuff.EventHandler

	proposals chan *model.Proposal
	qcs       chan *quilt.QuorumCertificate
	newViews  chan *model.NewView
	seen      *lru.Cache

	started *atomic.Bool
	ready   chan struct{}
	done    chan struct{}
	runErr  *atomic.Error
}

// New creates an event loop around the given handler. The loop is inert
// until Start is called.
func New(log zerolog.Logger, eventHandler hotstuff.EventHandler) (*EventLoop, error) {
	seen, err := lru.New(dedupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create dedup cache: %w", err)
	}
	e := &EventLoop{
		log:          log.With().Str("component", "event_loop").Logger(),
		eventHandler: eventHandler,
		proposals:    make(chan *model.Proposal),
		qcs:          make(chan *quilt.QuorumCertificate),
		newViews:     make(chan *model.NewView),
		seen:         seen,
		started:      atomic.NewBool(false),
		ready:        make(chan struct{}),
		done:         make(chan struct{}),
		runErr:       atomic.NewError(nil),
	}
	return e, nil
}

// Start launches the loop goroutine. It is idempotent; the loop runs
// until the context is cancelled or the handler fails.
func (e *EventLoop) Start(ctx context.Context) {
	if e.started.Swap(true) {
		return
	}
	go e.loop(ctx)
}

// Ready returns a channel closed once the handler has entered its first
// view.
func (e *EventLoop) Ready() <-chan struct{} {
	return e.ready
}

// Done returns a channel closed when the loop has exited.
func (e *EventLoop) Done() <-chan struct{} {
	return e.done
}

// Err returns the fatal error that stopped the loop, if any.
func (e *EventLoop) Err() error {
	return e.runErr.Load()
}

func (e *EventLoop) loop(ctx context.Context) {
	defer close(e.done)

	err := e.eventHandler.Start()
	if err != nil {
		e.fatal(fmt.Errorf("could not start event handler: %w", err))
		return
	}
	close(e.ready)

	for {
		// the timeout channel changes with every processed event
		timeoutChannel := e.eventHandler.TimeoutChannel()

		// priority check: an expired view timer wins over queued events,
		// so a flood of messages cannot stall view progression
		select {
		case <-ctx.Done():
			return
		case <-timeoutChannel:
			err = e.eventHandler.OnLocalTimeout()
		default:
			select {
			case <-ctx.Done():
				return
			case <-timeoutChannel:
				err = e.eventHandler.OnLocalTimeout()
			case proposal := <-e.proposals:
				err = e.eventHandler.OnReceiveProposal(proposal)
			case qc := <-e.qcs:
				err = e.eventHandler.OnQCConstructed(qc)
			case newView := <-e.newViews:
				err = e.eventHandler.OnReceiveNewView(newView)
			}
		}
		if err != nil {
			e.fatal(fmt.Errorf("could not process event: %w", err))
			return
		}
	}
}

// fatal records the error that stops the loop. Consensus cannot continue
// on corrupted state; the node operator has to intervene.
func (e *EventLoop) fatal(err error) {
	e.runErr.Store(err)
	e.log.Error().Err(err).Msg("event loop terminated")
}

// SubmitProposal submits a block proposal to the loop. Proposals already
// seen recently are dropped.
func (e *EventLoop) SubmitProposal(proposal *model.Proposal) {
	duplicate, _ := e.seen.ContainsOrAdd(proposal.Block.BlockID, struct{}{})
	if duplicate {
		return
	}
	select {
	case e.proposals <- proposal:
	case <-e.done:
	}
}

// Forget drops the block from the duplicate-suppression cache, so that a
// redelivery of its proposal is processed again. Used by the sync path
// when a previously dropped proposal has to be reprocessed.
func (e *EventLoop) Forget(blockID quilt.Identifier) {
	e.seen.Remove(blockID)
}

// SubmitTrustedQC submits a QC constructed by this replica's own vote
// aggregator, which already validated every contributing vote.
func (e *EventLoop) SubmitTrustedQC(qc *quilt.QuorumCertificate) {
	select {
	case e.qcs <- qc:
	case <-e.done:
	}
}

// SubmitNewView submits a new-view message received from a peer.
func (e *EventLoop) SubmitNewView(newView *model.NewView) {
	select {
	case e.newViews <- newView:
	case <-e.done:
	}
}
