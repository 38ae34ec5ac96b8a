package voteaggregator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/committees"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/mocks"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/validator"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/verification"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

const testEpoch uint64 = 1

type aggregatorFixture struct {
	identities quilt.IdentityList
	notifier   *mocks.Consumer
	aggregator *VoteAggregator
	cancel     context.CancelFunc

	lock     sync.Mutex
	builtQCs []*quilt.QuorumCertificate
}

func newAggregatorFixture(t *testing.T, committeeSize int) *aggregatorFixture {
	f := &aggregatorFixture{}
	return f.wire(t, committeeSize, func(qc *quilt.QuorumCertificate) {
		f.lock.Lock()
		defer f.lock.Unlock()
		f.builtQCs = append(f.builtQCs, qc)
	})
}

// newAggregatorFixtureWithConsumer wires the aggregator to the given QC
// consumer instead of the recording default.
func newAggregatorFixtureWithConsumer(t *testing.T, committeeSize int, onQCCreated func(*quilt.QuorumCertificate)) *aggregatorFixture {
	f := &aggregatorFixture{}
	return f.wire(t, committeeSize, onQCCreated)
}

func (f *aggregatorFixture) wire(t *testing.T, committeeSize int, onQCCreated func(*quilt.QuorumCertificate)) *aggregatorFixture {
	f.identities = unittest.IdentityListFixture(committeeSize)

	committee, err := committees.NewStatic(testEpoch, f.identities[0].NodeID, f.identities)
	require.NoError(t, err)

	f.notifier = mocks.NewConsumer(t)
	f.notifier.On("OnQcConstructedFromVotes", mock.Anything).Return().Maybe()

	f.aggregator = New(
		unittest.Logger(),
		f.notifier,
		committee,
		validator.New(committee, verification.NewVerifier()),
		0,
		onQCCreated,
	)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.aggregator.Start(ctx)
	t.Cleanup(cancel)
	return f
}

func (f *aggregatorFixture) qcCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.builtQCs)
}

// proposalFixture builds a proposal at the given view, proposed and signed
// by the first identity.
func (f *aggregatorFixture) proposalFixture(t *testing.T, view uint64) *model.Proposal {
	block := helper.MakeBlock(helper.WithBlockView(view))
	block.Epoch = testEpoch
	block.ProposerID = f.identities[0].NodeID
	return &model.Proposal{
		Block:   block,
		SigData: f.signVote(t, f.identities[0].NodeID, view, block.BlockID),
	}
}

func (f *aggregatorFixture) signVote(t *testing.T, signerID quilt.Identifier, view uint64, blockID quilt.Identifier) []byte {
	sig, err := unittest.PrivateKeyFixture(signerID).Sign(verification.MakeVoteMessage(view, blockID))
	require.NoError(t, err)
	return sig
}

func (f *aggregatorFixture) vote(t *testing.T, signerIdx int, proposal *model.Proposal) *model.Vote {
	block := proposal.Block
	signerID := f.identities[signerIdx].NodeID
	return &model.Vote{
		View:     block.View,
		BlockID:  block.BlockID,
		SignerID: signerID,
		SigData:  f.signVote(t, signerID, block.View, block.BlockID),
	}
}

// TestAggregator_BlockThenVotes verifies the happy path: the proposal
// arrives first, two votes complete the quorum of 3 out of 4.
func TestAggregator_BlockThenVotes(t *testing.T) {
	f := newAggregatorFixture(t, 4)
	proposal := f.proposalFixture(t, 10)

	f.aggregator.AddBlock(proposal)
	f.aggregator.AddVote(f.vote(t, 1, proposal))
	f.aggregator.AddVote(f.vote(t, 2, proposal))

	require.Eventually(t, func() bool { return f.qcCount() == 1 }, time.Second, 5*time.Millisecond)
}

// TestAggregator_VotesBeforeBlock verifies that early votes are cached and
// replayed when the proposal arrives.
func TestAggregator_VotesBeforeBlock(t *testing.T) {
	f := newAggregatorFixture(t, 4)
	proposal := f.proposalFixture(t, 10)

	f.aggregator.AddVote(f.vote(t, 1, proposal))
	f.aggregator.AddVote(f.vote(t, 2, proposal))
	// votes are processed asynchronously; give them time to be cached
	require.Never(t, func() bool { return f.qcCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	f.aggregator.AddBlock(proposal)
	require.Eventually(t, func() bool { return f.qcCount() == 1 }, time.Second, 5*time.Millisecond)
}

// TestAggregator_QuorumOnVoteReplay covers the ordering where the quorum
// completes while replaying cached votes for a late-arriving proposal. The
// QC consumer blocks on an unbuffered channel that is drained only after
// AddBlock has returned, mirroring the event loop: it hands the block to
// the aggregator and only then returns to its channel select, so AddBlock
// must never wait on the QC hand-off itself.
func TestAggregator_QuorumOnVoteReplay(t *testing.T) {
	qcs := make(chan *quilt.QuorumCertificate)
	f := newAggregatorFixtureWithConsumer(t, 4, func(qc *quilt.QuorumCertificate) {
		qcs <- qc
	})
	proposal := f.proposalFixture(t, 10)

	f.aggregator.AddVote(f.vote(t, 1, proposal))
	f.aggregator.AddVote(f.vote(t, 2, proposal))
	// let the workers cache the early votes, so the quorum completes
	// during the replay rather than on a trailing vote
	time.Sleep(50 * time.Millisecond)

	returned := make(chan struct{})
	go func() {
		f.aggregator.AddBlock(proposal)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("AddBlock blocked on the QC hand-off")
	}

	select {
	case qc := <-qcs:
		require.Equal(t, proposal.Block.BlockID, qc.BlockID)
		require.Equal(t, proposal.Block.View, qc.View)
	case <-time.After(time.Second):
		t.Fatal("no QC was built from the replayed votes")
	}
}

// TestAggregator_PrunedViewsDropped verifies that state below the pruning
// horizon is discarded and new messages for pruned views are no-ops.
func TestAggregator_PrunedViewsDropped(t *testing.T) {
	f := newAggregatorFixture(t, 4)
	proposal := f.proposalFixture(t, 10)

	f.aggregator.PruneUpToView(20)

	f.aggregator.AddBlock(proposal)
	f.aggregator.AddVote(f.vote(t, 1, proposal))
	f.aggregator.AddVote(f.vote(t, 2, proposal))
	require.Never(t, func() bool { return f.qcCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	// pruning never regresses
	f.aggregator.PruneUpToView(5)
	f.aggregator.AddBlock(proposal)
	require.Never(t, func() bool { return f.qcCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

// TestAggregator_DoubleVoteReported verifies that equivocating votes are
// reported to the notifier rather than escalated.
func TestAggregator_DoubleVoteReported(t *testing.T) {
	f := newAggregatorFixture(t, 4)
	proposal := f.proposalFixture(t, 10)
	f.aggregator.AddBlock(proposal)

	detected := make(chan struct{})
	f.notifier.On("OnDoubleVotingDetected", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(detected)
	}).Return().Once()

	honest := f.vote(t, 1, proposal)
	f.aggregator.AddVote(honest)

	otherBlockID := unittest.IdentifierFixture()
	conflicting := &model.Vote{
		View:     honest.View,
		BlockID:  otherBlockID,
		SignerID: honest.SignerID,
		SigData:  f.signVote(t, honest.SignerID, honest.View, otherBlockID),
	}
	f.aggregator.AddVote(conflicting)

	select {
	case <-detected:
	case <-time.After(time.Second):
		t.Fatal("double vote was not reported")
	}
}

// TestAggregator_InvalidVoteReported verifies that votes failing
// validation are reported to the notifier.
func TestAggregator_InvalidVoteReported(t *testing.T) {
	f := newAggregatorFixture(t, 4)
	proposal := f.proposalFixture(t, 10)
	f.aggregator.AddBlock(proposal)

	detected := make(chan struct{})
	f.notifier.On("OnInvalidVoteDetected", mock.Anything).Run(func(mock.Arguments) {
		close(detected)
	}).Return().Once()

	forged := f.vote(t, 1, proposal)
	forged.SigData = unittest.SignatureFixture()
	f.aggregator.AddVote(forged)

	select {
	case <-detected:
	case <-time.After(time.Second):
		t.Fatal("invalid vote was not reported")
	}
}
