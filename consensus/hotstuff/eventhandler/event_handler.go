// Package eventhandler implements the protocol state machine. It exposes
// an API to handle one event at a time synchronously; the event loop is
// responsible for calling it strictly sequentially.
package eventhandler

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// EventHandler orchestrates all consensus components in reaction to
// individual protocol events. All consensus state mutation happens here,
// on the single goroutine driving the handler.
type EventHandler struct {
	log            zerolog.Logger
	paceMaker      hotstuff.PaceMaker
	blockProducer  hotstuff.BlockProducer
	forks          hotstuff.Forks
	communicator   hotstuff.Communicator
	committee      hotstuff.Replicas
	voteAggregator hotstuff.VoteAggregator
	safetyRules    hotstuff.SafetyRules
	validator      hotstuff.Validator
	notifier       hotstuff.Consumer
}

var _ hotstuff.EventHandler = (*EventHandler)(nil)

// NewEventHandler creates an EventHandler instance with initial components.
func NewEventHandler(
	log zerolog.Logger,
	paceMaker hotstuff.PaceMaker,
	blockProducer hotstuff.BlockProducer,
	forks hotstuff.Forks,
	communicator hotstuff.Communicator,
	committee hotstuff.Replicas,
	voteAggregator hotstuff.VoteAggregator,
	safetyRules hotstuff.SafetyRules,
	validator hotstuff.Validator,
	notifier hotstuff.Consumer,
) (*EventHandler, error) {
	e := &EventHandler{
		log:            log.With().Str("hotstuff", "participant").Logger(),
		paceMaker:      paceMaker,
		blockProducer:  blockProducer,
		forks:          forks,
		communicator:   communicator,
		committee:      committee,
		voteAggregator: voteAggregator,
		safetyRules:    safetyRules,
		validator:      validator,
		notifier:       notifier,
	}
	return e, nil
}

// OnReceiveProposal processes a block proposal received from a peer or
// looped back after our own broadcast.
func (e *EventHandler) OnReceiveProposal(proposal *model.Proposal) error {

	block := proposal.Block
	curView := e.paceMaker.CurView()

	log := e.log.With().
		Uint64("cur_view", curView).
		Uint64("block_view", block.View).
		Hex("block_id", block.BlockID[:]).
		Hex("proposer_id", block.ProposerID[:]).
		Logger()

	e.notifier.OnReceiveProposal(curView, proposal)
	defer e.notifier.OnEventProcessed()
	log.Debug().Msg("proposal received")

	// ignore stale proposals
	if block.View < e.forks.FinalizedView() {
		log.Debug().Msg("stale proposal")
		return nil
	}

	// a proposal failing validation is dropped; the sender is Byzantine
	// or on an unknown epoch, neither of which this replica can fix
	err := e.validator.ValidateProposal(proposal)
	if err != nil {
		if model.IsInvalidBlockError(err) {
			log.Warn().Err(err).Msg("invalid proposal")
			return nil
		}
		if errors.Is(err, model.ErrViewForUnknownEpoch) {
			log.Warn().Err(err).Msg("proposal for unknown epoch")
			return nil
		}
		return fmt.Errorf("could not validate proposal %x: %w", block.BlockID, err)
	}

	// store the block; an unknown ancestor triggers a sync request
	err = e.forks.AddProposal(proposal)
	if err != nil {
		if model.IsMissingBlockError(err) {
			e.notifier.OnSyncRequested(block.QC.BlockID, block.QC.View)
			err = e.communicator.RequestBlock(block.QC.BlockID)
			if err != nil {
				log.Warn().Err(err).Msg("could not request missing ancestor")
			}
			return nil
		}
		return fmt.Errorf("cannot add proposal to forks (%x): %w", block.BlockID, err)
	}

	// hand the block to the vote aggregator, so that cached votes for it
	// can be replayed off this goroutine; a quorum completed during the
	// replay re-enters the loop as a constructed QC
	e.voteAggregator.AddBlock(proposal)

	// the embedded justify may advance our view
	nve, err := e.paceMaker.ProcessQC(block.QC)
	if err != nil {
		return fmt.Errorf("could not process QC for block %x: %w", block.BlockID, err)
	}
	if nve == nil {
		// still in the same view; vote if the proposal is for it
		return e.processBlockForCurrentView(proposal)
	}

	// the view changed; the new view picks up this proposal from forks if
	// it is the one to act on
	return e.startNewView()
}

// OnQCConstructed processes a QC constructed by this replica's vote
// aggregator.
func (e *EventHandler) OnQCConstructed(qc *quilt.QuorumCertificate) error {

	curView := e.paceMaker.CurView()

	log := e.log.With().
		Uint64("cur_view", curView).
		Uint64("qc_view", qc.View).
		Hex("qc_block_id", qc.BlockID[:]).
		Logger()

	defer e.notifier.OnEventProcessed()
	log.Debug().Msg("received constructed QC")

	// ignore stale qc
	if qc.View < e.forks.FinalizedView() {
		log.Debug().Msg("stale qc")
		return nil
	}

	return e.processQC(qc)
}

// OnReceiveNewView processes a new-view message received from a peer. Its
// only payload of interest is the sender's highest QC.
func (e *EventHandler) OnReceiveNewView(newView *model.NewView) error {

	curView := e.paceMaker.CurView()

	log := e.log.With().
		Uint64("cur_view", curView).
		Uint64("new_view", newView.View).
		Hex("signer_id", newView.SignerID[:]).
		Logger()

	defer e.notifier.OnEventProcessed()
	log.Debug().Msg("new-view message received")

	qc := newView.HighestQC
	if qc == nil {
		log.Warn().Msg("new-view message without QC")
		return nil
	}
	if qc.View < e.forks.FinalizedView() {
		log.Debug().Msg("new-view message with stale qc")
		return nil
	}

	// we can only check the QC against a block we know; otherwise request
	// the block and wait for the QC to reach us again
	certified, found := e.forks.GetProposal(qc.BlockID)
	if !found {
		e.notifier.OnSyncRequested(qc.BlockID, qc.View)
		err := e.communicator.RequestBlock(qc.BlockID)
		if err != nil {
			log.Warn().Err(err).Msg("could not request block of new-view QC")
		}
		return nil
	}

	err := e.validator.ValidateQC(qc, certified.Block)
	if err != nil {
		if model.IsInvalidQCError(err) {
			log.Warn().Err(err).Msg("invalid QC in new-view message")
			return nil
		}
		if errors.Is(err, model.ErrViewForUnknownEpoch) {
			log.Warn().Err(err).Msg("new-view QC for unknown epoch")
			return nil
		}
		return fmt.Errorf("could not validate QC from new-view message: %w", err)
	}

	return e.processQC(qc)
}

// OnLocalTimeout is called when the view timer created by the pacemaker
// looped through the event loop: give up on the current view, share our
// highest QC and move on.
func (e *EventHandler) OnLocalTimeout() error {

	curView := e.paceMaker.CurView()
	defer e.notifier.OnEventProcessed()

	log := e.log.With().Uint64("cur_view", curView).Logger()
	log.Debug().Msg("timeout received from event loop")

	nve, err := e.paceMaker.OnTimeout()
	if err != nil {
		return fmt.Errorf("could not process timeout of view %d: %w", curView, err)
	}

	// share our highest QC so the next leader proposes on the freshest
	// certified block
	newView := &model.NewView{
		View:      nve.View,
		SignerID:  e.committee.Self(),
		HighestQC: e.paceMaker.NewestQC(),
	}
	e.notifier.OnNewViewBroadcast(newView)
	err = e.communicator.BroadcastNewView(newView)
	if err != nil {
		log.Warn().Err(err).Msg("could not broadcast new-view message")
	}

	return e.startNewView()
}

// TimeoutChannel returns the channel signalling the current view's
// timeout. Must be re-obtained after every processed event.
func (e *EventHandler) TimeoutChannel() <-chan time.Time {
	return e.paceMaker.TimeoutChannel()
}

// Start starts the pacemaker timer and enters the current view.
func (e *EventHandler) Start() error {
	e.paceMaker.Start()
	return e.startNewView()
}

// processQC stores the QC and checks whether it triggers a view change.
func (e *EventHandler) processQC(qc *quilt.QuorumCertificate) error {

	err := e.forks.AddQC(qc)
	if err != nil {
		if model.IsMissingBlockError(err) {
			e.notifier.OnSyncRequested(qc.BlockID, qc.View)
			err = e.communicator.RequestBlock(qc.BlockID)
			if err != nil {
				e.log.Warn().Err(err).Msg("could not request certified block")
			}
			return nil
		}
		return fmt.Errorf("could not add QC to forks: %w", err)
	}

	nve, err := e.paceMaker.ProcessQC(qc)
	if err != nil {
		return fmt.Errorf("could not process QC: %w", err)
	}
	if nve == nil {
		return nil
	}

	// current view has changed, go to new view
	return e.startNewView()
}

// startNewView is called whenever the pacemaker enters a new view. It
// checks whether this replica has to propose or vote in the view.
func (e *EventHandler) startNewView() error {

	curView := e.paceMaker.CurView()

	currentLeader, err := e.committee.LeaderForView(curView)
	if err != nil {
		return fmt.Errorf("failed to determine leader for new view %d: %w", curView, err)
	}

	log := e.log.With().
		Uint64("cur_view", curView).
		Hex("leader_id", currentLeader[:]).
		Logger()
	log.Debug().
		Uint64("finalized_view", e.forks.FinalizedView()).
		Msg("entering new view")
	e.notifier.OnEnteringView(curView, currentLeader)

	// collectors for views at or below the finalized boundary can no
	// longer contribute a usable QC
	e.voteAggregator.PruneUpToView(e.forks.FinalizedView())

	if e.committee.Self() == currentLeader {
		log.Debug().Msg("generating block proposal as leader")

		newestQC := e.paceMaker.NewestQC()
		_, found := e.forks.GetProposal(newestQC.BlockID)
		if !found {
			// without the newest certified block we cannot build a valid
			// payload; wait for sync to deliver it
			log.Debug().
				Uint64("qc_view", newestQC.View).
				Hex("block_id", newestQC.BlockID[:]).
				Msg("no parent found for newest QC, cannot propose")
			return nil
		}

		proposal, err := e.blockProducer.MakeBlockProposal(curView, newestQC)
		if err != nil {
			if model.IsNoProposalError(err) {
				log.Debug().Err(err).Msg("nothing to propose")
				return nil
			}
			return fmt.Errorf("cannot make block proposal for view %d: %w", curView, err)
		}
		e.notifier.OnProposingBlock(proposal)

		block := proposal.Block
		log.Debug().
			Uint64("block_view", block.View).
			Hex("block_id", block.BlockID[:]).
			Uint64("parent_view", newestQC.View).
			Hex("parent_id", newestQC.BlockID[:]).
			Msg("broadcasting proposal")

		// the broadcast loops the proposal back to our own event loop, so
		// the leader votes for its block through the same path as everyone
		err = e.communicator.BroadcastProposal(proposal)
		if err != nil {
			log.Warn().Err(err).Msg("could not broadcast proposal")
		}
		return nil
	}

	// as a replica of the current view, process a cached proposal if the
	// leader's block arrived before the view change
	proposals := e.forks.GetProposalsForView(curView)
	if len(proposals) == 0 {
		log.Debug().Msg("waiting for proposal from leader")
		return nil
	}

	// multiple proposals mean the leader equivocated; forks has reported
	// it and voting for any single one is safe
	return e.processBlockForCurrentView(proposals[0])
}

// processBlockForCurrentView votes for the given proposal if it is for the
// current view and the safety rules allow it.
func (e *EventHandler) processBlockForCurrentView(proposal *model.Proposal) error {

	curView := e.paceMaker.CurView()
	block := proposal.Block
	if block.View != curView {
		// the proposal is outdated, we have moved on
		return nil
	}

	nextLeader, err := e.committee.LeaderForView(curView + 1)
	if err != nil {
		return fmt.Errorf("failed to determine leader for next view %d: %w", curView+1, err)
	}

	err = e.ownVote(proposal, curView, nextLeader)
	if err != nil {
		return fmt.Errorf("unexpected error in voting logic: %w", err)
	}

	return nil
}

// ownVote generates and forwards our vote, if the safety rules decide to
// vote. The vote goes to the leader of the next view, who aggregates it;
// when we are the next leader it feeds straight into our own aggregator.
func (e *EventHandler) ownVote(proposal *model.Proposal, curView uint64, nextLeader quilt.Identifier) error {

	block := proposal.Block
	log := e.log.With().
		Uint64("block_view", block.View).
		Hex("block_id", block.BlockID[:]).
		Logger()

	ownVote, err := e.safetyRules.ProduceVote(proposal, curView)
	if err != nil {
		if !model.IsNoVoteError(err) {
			// unknown error, exit the event loop
			return fmt.Errorf("could not produce vote: %w", err)
		}
		log.Debug().Err(err).Msg("should not vote for this block")
		return nil
	}

	e.notifier.OnVoting(ownVote)
	if e.committee.Self() == nextLeader {
		e.voteAggregator.AddVote(ownVote)
		return nil
	}
	err = e.communicator.SendVote(ownVote, nextLeader)
	if err != nil {
		log.Warn().Err(err).Msg("could not forward vote")
	}
	return nil
}
