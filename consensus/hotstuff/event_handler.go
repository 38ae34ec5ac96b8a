package hotstuff

import (
	"time"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// EventHandler runs the protocol state machine. It exposes an API to
// process one event at a time; the event loop is responsible for calling
// it strictly sequentially. All consensus state mutation happens inside
// the handler, on the event loop's goroutine.
type EventHandler interface {

	// OnReceiveProposal processes a block proposal received from a peer or
	// produced locally.
	OnReceiveProposal(proposal *model.Proposal) error

	// OnQCConstructed processes a QC constructed by this replica's vote
	// aggregator.
	OnQCConstructed(qc *quilt.QuorumCertificate) error

	// OnReceiveNewView processes a new-view message received from a peer.
	OnReceiveNewView(newView *model.NewView) error

	// OnLocalTimeout processes the expiry of the current view's timer:
	// broadcast a new-view message with our highest QC and move on.
	OnLocalTimeout() error

	// TimeoutChannel returns the channel signalling the current view's
	// timeout. Must be re-obtained after every processed event.
	TimeoutChannel() <-chan time.Time

	// Start starts the pacemaker and enters the current view.
	Start() error
}
