// Package consensus assembles the consensus components into a running
// validator participant for a single shard.
package consensus

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/blockproducer"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/eventhandler"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/eventloop"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/forks"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/notifications"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/notifications/pubsub"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker/timeout"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/persister"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/safetyrules"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/validator"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/verification"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/voteaggregator"
	"github.com/quiltchain/quilt-go/model/messages"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
	"github.com/quiltchain/quilt-go/module/builder"
	"github.com/quiltchain/quilt-go/module/finalizer"
	"github.com/quiltchain/quilt-go/module/mempool"
	"github.com/quiltchain/quilt-go/module/metrics"
	"github.com/quiltchain/quilt-go/network"
	"github.com/quiltchain/quilt-go/storage"
)

type config struct {
	timeout        timeout.Config
	builderOptions []builder.Option
	collector      *metrics.ConsensusCollector
}

// Option customizes a participant.
type Option func(*config)

// WithTimeoutConfig overrides the default view timeout configuration.
func WithTimeoutConfig(cfg timeout.Config) Option {
	return func(c *config) {
		c.timeout = cfg
	}
}

// WithBuilderOptions customizes the block builder.
func WithBuilderOptions(options ...builder.Option) Option {
	return func(c *config) {
		c.builderOptions = options
	}
}

// WithMetrics subscribes the given collector to the consensus
// notifications.
func WithMetrics(collector *metrics.ConsensusCollector) Option {
	return func(c *config) {
		c.collector = collector
	}
}

// Participant is one fully wired consensus node of a shard committee. It
// receives messages from the network, drives the view state machine and
// commits blocks to storage.
type Participant struct {
	log        zerolog.Logger
	me         module.Local
	shardID    quilt.ShardID
	blocks     storage.Blocks
	loop       *eventloop.EventLoop
	aggregator *voteaggregator.VoteAggregator
	pending    *pendingCache
}

var _ network.Adapter = (*Participant)(nil)

// NewParticipant wires up a consensus participant on top of a bootstrapped
// block store. Safety and liveness state is recovered from the database,
// so a crashed replica resumes without violating earlier voting promises;
// a fresh replica starts from the genesis certificate.
func NewParticipant(
	log zerolog.Logger,
	db *badger.DB,
	me module.Local,
	committee hotstuff.Replicas,
	blocks storage.Blocks,
	pool mempool.Commands,
	receiver module.ApplyReceiver,
	net network.Network,
	options ...Option,
) (*Participant, error) {

	cfg := config{
		timeout: timeout.DefaultConfig(),
	}
	for _, option := range options {
		option(&cfg)
	}

	root, err := blocks.Committed()
	if err != nil {
		return nil, fmt.Errorf("could not read committed boundary (store not bootstrapped?): %w", err)
	}
	shardID := root.Header.ShardID
	persist := persister.New(db, shardID)

	livenessData, safetyData, err := recoverState(persist, root)
	if err != nil {
		return nil, fmt.Errorf("could not recover consensus state: %w", err)
	}

	// the chain grows from the newest certified block; everything below it
	// is either committed or abandoned
	certified, err := blocks.ByID(livenessData.NewestQC.BlockID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve newest certified block: %w", err)
	}
	var certifiedBlock *model.Block
	if certified.Header.Height == 0 {
		certifiedBlock = model.GenesisBlockFromQuilt(certified)
	} else {
		certifiedBlock = model.BlockFromQuilt(certified)
	}
	trustedRoot := &model.CertifiedBlock{
		Block: certifiedBlock,
		QC:    livenessData.NewestQC,
	}

	notifier := pubsub.NewDistributor()
	notifier.AddConsumer(notifications.NewLogConsumer(log))
	if cfg.collector != nil {
		notifier.AddConsumer(metrics.NewConsensusConsumer(cfg.collector))
	}

	final := finalizer.New(log, blocks, pool, receiver)
	forkChoice, err := forks.New(trustedRoot, final, notifier)
	if err != nil {
		return nil, fmt.Errorf("could not create forks: %w", err)
	}

	verifier := verification.NewVerifier()
	validate := validator.New(committee, verifier)

	p := &Participant{
		log:     log.With().Str("component", "participant").Str("shard_id", string(shardID)).Logger(),
		me:      me,
		shardID: shardID,
		blocks:  blocks,
		pending: newPendingCache(defaultPendingLimit),
	}
	notifier.AddConsumer(&chainConsumer{participant: p})

	// QCs assembled from collected votes feed back into the event loop
	p.aggregator = voteaggregator.New(
		log,
		notifier,
		committee,
		validate,
		trustedRoot.Block.View,
		func(qc *quilt.QuorumCertificate) {
			p.loop.SubmitTrustedQC(qc)
		},
	)

	signer := verification.NewSigner(me)
	safety, err := safetyrules.New(signer, persist, committee, safetyData)
	if err != nil {
		return nil, fmt.Errorf("could not create safety rules: %w", err)
	}

	paceMaker, err := pacemaker.New(livenessData, timeout.NewController(cfg.timeout), notifier, persist)
	if err != nil {
		return nil, fmt.Errorf("could not create pacemaker: %w", err)
	}

	build := builder.New(blocks, pool, cfg.builderOptions...)
	producer := blockproducer.New(signer, committee, build)

	communicator := net.Register(me.NodeID(), p, blocks)

	handler, err := eventhandler.NewEventHandler(
		log,
		paceMaker,
		producer,
		forkChoice,
		communicator,
		committee,
		p.aggregator,
		safety,
		validate,
		notifier,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create event handler: %w", err)
	}

	p.loop, err = eventloop.New(log, handler)
	if err != nil {
		return nil, fmt.Errorf("could not create event loop: %w", err)
	}

	return p, nil
}

// recoverState loads the persisted safety and liveness state. A fresh
// database is initialized from the committed root block, which must then
// be the genesis block; a store with a higher committed boundary but no
// consensus state is corrupted.
func recoverState(persist hotstuff.Persister, root *quilt.Block) (*hotstuff.LivenessData, *hotstuff.SafetyData, error) {

	livenessData, err := persist.GetLivenessData()
	if errors.Is(err, storage.ErrNotFound) {
		if root.Header.Height != 0 {
			return nil, nil, fmt.Errorf("no liveness data for committed boundary at height %d", root.Header.Height)
		}
		livenessData = &hotstuff.LivenessData{
			CurrentView: root.Header.View + 1,
			NewestQC:    quilt.GenesisQC(root.ID()),
		}
		err = persist.PutLivenessData(livenessData)
		if err != nil {
			return nil, nil, fmt.Errorf("could not initialize liveness data: %w", err)
		}
	} else if err != nil {
		return nil, nil, fmt.Errorf("could not load liveness data: %w", err)
	}

	safetyData, err := persist.GetSafetyData()
	if errors.Is(err, storage.ErrNotFound) {
		safetyData = &hotstuff.SafetyData{
			LastVotedView: root.Header.View,
			LockedView:    root.Header.View,
			LockedBlockID: root.ID(),
		}
		err = persist.PutSafetyData(safetyData)
		if err != nil {
			return nil, nil, fmt.Errorf("could not initialize safety data: %w", err)
		}
	} else if err != nil {
		return nil, nil, fmt.Errorf("could not load safety data: %w", err)
	}

	return livenessData, safetyData, nil
}

// Start launches the vote aggregation workers and the event loop. The
// participant runs until the context is cancelled or it hits a fatal
// error.
func (p *Participant) Start(ctx context.Context) {
	p.aggregator.Start(ctx)
	p.loop.Start(ctx)
}

// Ready returns a channel closed once the participant has entered its
// first view.
func (p *Participant) Ready() <-chan struct{} {
	return p.loop.Ready()
}

// Done returns a channel closed when the participant has stopped.
func (p *Participant) Done() <-chan struct{} {
	return p.loop.Done()
}

// Err returns the fatal error that stopped the participant, if any.
func (p *Participant) Err() error {
	return p.loop.Err()
}

// SubmitProposal implements the inbound side of the network: a block
// proposal received from a peer (or our own broadcast looping back). The
// block is persisted before the consensus core sees the proposal, so the
// finalization path can always resolve it by ID.
func (p *Participant) SubmitProposal(originID quilt.Identifier, proposal *messages.BlockProposal) {
	block := proposal.Block
	blockID := block.ID()
	log := p.log.With().
		Hex("origin_id", originID[:]).
		Hex("block_id", blockID[:]).
		Uint64("view", block.Header.View).
		Logger()

	if block.Header.ShardID != p.shardID {
		log.Warn().Str("block_shard_id", string(block.Header.ShardID)).Msg("dropping proposal from foreign shard")
		return
	}
	if !block.Valid() {
		log.Warn().Msg("dropping structurally invalid proposal")
		return
	}
	if block.Justify == nil {
		// the genesis block is a protocol constant, never proposed
		log.Warn().Msg("dropping proposal without justify")
		return
	}

	err := p.blocks.Store(block)
	if err != nil {
		log.Error().Err(err).Msg("could not store proposed block")
		return
	}

	converted := &model.Proposal{
		Block:   model.BlockFromQuilt(block),
		SigData: proposal.ProposerSig,
	}
	// buffered until the block is incorporated; proposals with missing
	// ancestors are replayed once their parent connects
	p.pending.Add(converted)
	p.loop.SubmitProposal(converted)
}

// SubmitVote implements the inbound side of the network: a vote received
// from a peer. The vote is attributed to the authenticated origin.
func (p *Participant) SubmitVote(originID quilt.Identifier, vote *messages.BlockVote) {
	p.aggregator.AddVote(&model.Vote{
		View:     vote.View,
		BlockID:  vote.BlockID,
		SignerID: originID,
		SigData:  vote.SigData,
	})
}

// SubmitNewView implements the inbound side of the network: a new-view
// message received from a peer.
func (p *Participant) SubmitNewView(originID quilt.Identifier, newView *messages.NewView) {
	p.loop.SubmitNewView(&model.NewView{
		View:      newView.View,
		SignerID:  originID,
		HighestQC: newView.HighestQC,
	})
}

// defaultPendingLimit bounds the number of proposals buffered while their
// ancestry is being fetched.
const defaultPendingLimit = 1000

// onBlockIncorporated replays buffered children of a block that just
// connected to the chain. The replay happens on a fresh goroutine; the
// notification is emitted from within the event loop, which cannot feed
// itself synchronously.
func (p *Participant) onBlockIncorporated(blockID quilt.Identifier) {
	p.pending.Remove(blockID)
	children := p.pending.PopChildren(blockID)
	for _, child := range children {
		child := child
		p.loop.Forget(child.Block.BlockID)
		go p.loop.SubmitProposal(child)
	}
}

// onSyncRequested clears the duplicate suppression for a missing block, so
// that the answer to the block request is not mistaken for a replay.
func (p *Participant) onSyncRequested(blockID quilt.Identifier) {
	p.loop.Forget(blockID)
}

// chainConsumer keeps the participant in step with consensus progress: it
// replays buffered descendants of incorporated blocks, lifts duplicate
// suppression for requested blocks and tracks the justified status in the
// block store.
type chainConsumer struct {
	notifications.NoopConsumer
	participant *Participant
}

func (c *chainConsumer) OnBlockIncorporated(block *model.Block) {
	c.participant.onBlockIncorporated(block.BlockID)
}

func (c *chainConsumer) OnSyncRequested(blockID quilt.Identifier, _ uint64) {
	c.participant.onSyncRequested(blockID)
}

func (c *chainConsumer) OnQcIncorporated(qc *quilt.QuorumCertificate) {
	p := c.participant
	err := p.blocks.MarkJustified(qc.BlockID)
	if err != nil {
		p.log.Error().Err(err).Hex("block_id", qc.BlockID[:]).Msg("could not mark block justified")
	}
}
