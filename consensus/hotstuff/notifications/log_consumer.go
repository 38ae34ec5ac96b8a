package notifications

import (
	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
)

// LogConsumer subscribes to all consensus notifications and logs them with
// the appropriate severity.
type LogConsumer struct {
	log zerolog.Logger
}

var _ hotstuff.Consumer = (*LogConsumer)(nil)

func NewLogConsumer(log zerolog.Logger) *LogConsumer {
	lc := &LogConsumer{
		log: log,
	}
	return lc
}

func (lc *LogConsumer) OnBlockIncorporated(block *model.Block) {
	lc.logBasicBlockData(lc.log.Debug(), block).
		Msg("block incorporated")
}

func (lc *LogConsumer) OnFinalizedBlock(block *model.Block) {
	lc.logBasicBlockData(lc.log.Info(), block).
		Msg("block finalized")
}

func (lc *LogConsumer) OnDoubleProposeDetected(block *model.Block, alt *model.Block) {
	lc.log.Warn().
		Uint64("block_view", block.View).
		Hex("block_id", block.BlockID[:]).
		Hex("alt_id", alt.BlockID[:]).
		Hex("proposer_id", block.ProposerID[:]).
		Msg("double proposal detected")
}

func (lc *LogConsumer) OnEventProcessed() {
	lc.log.Debug().Msg("event processed")
}

func (lc *LogConsumer) OnEnteringView(view uint64, leader quilt.Identifier) {
	lc.log.Debug().
		Uint64("view", view).
		Hex("leader", leader[:]).
		Msg("view entered")
}

func (lc *LogConsumer) OnReceiveProposal(currentView uint64, proposal *model.Proposal) {
	block := proposal.Block
	lc.logBasicBlockData(lc.log.Debug(), block).
		Uint64("current_view", currentView).
		Msg("processing proposal")
}

func (lc *LogConsumer) OnQcTriggeredViewChange(qc *quilt.QuorumCertificate, newView uint64) {
	lc.log.Debug().
		Uint64("qc_view", qc.View).
		Hex("qc_block_id", qc.BlockID[:]).
		Uint64("new_view", newView).
		Msg("QC triggered view change")
}

func (lc *LogConsumer) OnQcConstructedFromVotes(qc *quilt.QuorumCertificate) {
	lc.log.Debug().
		Uint64("qc_view", qc.View).
		Hex("qc_block_id", qc.BlockID[:]).
		Msg("QC constructed from votes")
}

func (lc *LogConsumer) OnQcIncorporated(qc *quilt.QuorumCertificate) {
	lc.log.Debug().
		Uint64("qc_view", qc.View).
		Hex("qc_block_id", qc.BlockID[:]).
		Msg("QC incorporated")
}

func (lc *LogConsumer) OnProposingBlock(proposal *model.Proposal) {
	block := proposal.Block
	lc.logBasicBlockData(lc.log.Debug(), block).
		Msg("proposing block")
}

func (lc *LogConsumer) OnVoting(vote *model.Vote) {
	lc.log.Debug().
		Uint64("block_view", vote.View).
		Hex("block_id", vote.BlockID[:]).
		Msg("voting for block")
}

func (lc *LogConsumer) OnStartingTimeout(info model.TimerInfo) {
	lc.log.Debug().
		Uint64("view", info.View).
		Dur("duration", info.Duration).
		Msg("timeout started")
}

func (lc *LogConsumer) OnReachedTimeout(info model.TimerInfo) {
	lc.log.Debug().
		Uint64("view", info.View).
		Time("start_time", info.StartTime).
		Msg("timeout reached")
}

func (lc *LogConsumer) OnNewViewBroadcast(newView *model.NewView) {
	lg := lc.log.Debug().
		Uint64("view", newView.View)
	if newView.HighestQC != nil {
		lg = lg.Uint64("qc_view", newView.HighestQC.View)
	}
	lg.Msg("new-view message broadcast")
}

func (lc *LogConsumer) OnDoubleVotingDetected(vote *model.Vote, alt *model.Vote) {
	lc.log.Warn().
		Uint64("vote_view", vote.View).
		Hex("voted_block_id", vote.BlockID[:]).
		Hex("alt_id", alt.BlockID[:]).
		Hex("voter_id", vote.SignerID[:]).
		Msg("double vote detected")
}

func (lc *LogConsumer) OnInvalidVoteDetected(vote *model.Vote) {
	lc.log.Warn().
		Uint64("vote_view", vote.View).
		Hex("voted_block_id", vote.BlockID[:]).
		Hex("voter_id", vote.SignerID[:]).
		Msg("invalid vote detected")
}

func (lc *LogConsumer) OnSyncRequested(blockID quilt.Identifier, view uint64) {
	lc.log.Debug().
		Hex("block_id", blockID[:]).
		Uint64("view", view).
		Msg("sync requested for missing block")
}

func (lc *LogConsumer) logBasicBlockData(loggerEvent *zerolog.Event, block *model.Block) *zerolog.Event {
	loggerEvent.
		Uint64("block_view", block.View).
		Uint64("block_height", block.Height).
		Hex("block_id", block.BlockID[:]).
		Hex("proposer_id", block.ProposerID[:]).
		Hex("payload_hash", block.PayloadHash[:])
	if block.QC != nil {
		loggerEvent.
			Uint64("qc_view", block.QC.View).
			Hex("qc_block_id", block.QC.BlockID[:])
	}
	return loggerEvent
}
