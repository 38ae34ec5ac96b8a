package mocknet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/messages"
	"github.com/quiltchain/quilt-go/model/quilt"
	storagemock "github.com/quiltchain/quilt-go/storage/mocks"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

// recorder is an inbound adapter that records deliveries on channels.
type recorder struct {
	proposals chan receivedProposal
	votes     chan receivedVote
	newViews  chan receivedNewView
}

type receivedProposal struct {
	originID quilt.Identifier
	proposal *messages.BlockProposal
}

type receivedVote struct {
	originID quilt.Identifier
	vote     *messages.BlockVote
}

type receivedNewView struct {
	originID quilt.Identifier
	newView  *messages.NewView
}

func newRecorder() *recorder {
	return &recorder{
		proposals: make(chan receivedProposal, 16),
		votes:     make(chan receivedVote, 16),
		newViews:  make(chan receivedNewView, 16),
	}
}

func (r *recorder) SubmitProposal(originID quilt.Identifier, proposal *messages.BlockProposal) {
	r.proposals <- receivedProposal{originID: originID, proposal: proposal}
}

func (r *recorder) SubmitVote(originID quilt.Identifier, vote *messages.BlockVote) {
	r.votes <- receivedVote{originID: originID, vote: vote}
}

func (r *recorder) SubmitNewView(originID quilt.Identifier, newView *messages.NewView) {
	r.newViews <- receivedNewView{originID: originID, newView: newView}
}

func (r *recorder) awaitProposal(t *testing.T) receivedProposal {
	select {
	case received := <-r.proposals:
		return received
	case <-time.After(time.Second):
		t.Fatal("proposal was not delivered")
		return receivedProposal{}
	}
}

func (r *recorder) assertNoProposal(t *testing.T) {
	select {
	case <-r.proposals:
		t.Fatal("unexpected proposal delivery")
	case <-time.After(50 * time.Millisecond):
	}
}

type busFixture struct {
	net       *Network
	nodeIDs   []quilt.Identifier
	recorders map[quilt.Identifier]*recorder
	conduits  map[quilt.Identifier]*Conduit
	blocks    *storagemock.Blocks
}

func newBusFixture(t *testing.T, n int) *busFixture {
	f := &busFixture{
		net:       NewNetwork(unittest.Logger()),
		nodeIDs:   unittest.IdentifierListFixture(n),
		recorders: make(map[quilt.Identifier]*recorder),
		conduits:  make(map[quilt.Identifier]*Conduit),
	}
	f.blocks = storagemock.NewBlocks(t)
	for _, nodeID := range f.nodeIDs {
		rec := newRecorder()
		f.recorders[nodeID] = rec
		f.conduits[nodeID] = f.net.Register(nodeID, rec, f.blocks).(*Conduit)
	}
	return f
}

// broadcast stores a block fixture behind the mock store and broadcasts a
// proposal for it from the given node.
func (f *busFixture) broadcast(t *testing.T, senderID quilt.Identifier) *model.Proposal {
	block := unittest.BlockFixture()
	f.blocks.On("ByID", block.ID()).Return(block, nil)
	proposal := helper.MakeProposal(helper.WithBlock(model.BlockFromQuilt(block)))
	require.NoError(t, f.conduits[senderID].BroadcastProposal(proposal))
	return proposal
}

func TestBroadcastProposal_ReachesAllIncludingSender(t *testing.T) {
	f := newBusFixture(t, 3)
	senderID := f.nodeIDs[0]

	proposal := f.broadcast(t, senderID)

	for _, nodeID := range f.nodeIDs {
		received := f.recorders[nodeID].awaitProposal(t)
		assert.Equal(t, senderID, received.originID)
		assert.Equal(t, proposal.Block.BlockID, received.proposal.Block.ID())
		assert.Equal(t, proposal.SigData, received.proposal.ProposerSig)
	}
}

func TestSendVote_ReachesOnlyRecipient(t *testing.T) {
	f := newBusFixture(t, 3)
	senderID, recipientID, otherID := f.nodeIDs[0], f.nodeIDs[1], f.nodeIDs[2]

	vote := helper.MakeVote(helper.WithVoteSignerID(senderID))
	require.NoError(t, f.conduits[senderID].SendVote(vote, recipientID))

	select {
	case received := <-f.recorders[recipientID].votes:
		assert.Equal(t, senderID, received.originID)
		assert.Equal(t, vote.BlockID, received.vote.BlockID)
		assert.Equal(t, vote.View, received.vote.View)
	case <-time.After(time.Second):
		t.Fatal("vote was not delivered")
	}
	select {
	case <-f.recorders[otherID].votes:
		t.Fatal("vote must not reach third parties")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastNewView_ExcludesSender(t *testing.T) {
	f := newBusFixture(t, 3)
	senderID := f.nodeIDs[0]

	newView := helper.MakeNewView(func(newView *model.NewView) {
		newView.SignerID = senderID
	})
	require.NoError(t, f.conduits[senderID].BroadcastNewView(newView))

	for _, nodeID := range f.nodeIDs[1:] {
		select {
		case received := <-f.recorders[nodeID].newViews:
			assert.Equal(t, senderID, received.originID)
			assert.Equal(t, newView.View, received.newView.View)
			assert.Equal(t, newView.HighestQC, received.newView.HighestQC)
		case <-time.After(time.Second):
			t.Fatal("new-view was not delivered")
		}
	}
	select {
	case <-f.recorders[senderID].newViews:
		t.Fatal("new-view must not loop back to the sender")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIsolation_DropsAndRestores(t *testing.T) {
	f := newBusFixture(t, 3)
	senderID, isolatedID, connectedID := f.nodeIDs[0], f.nodeIDs[1], f.nodeIDs[2]

	f.net.Isolate(isolatedID)
	f.broadcast(t, senderID)

	f.recorders[connectedID].awaitProposal(t)
	f.recorders[isolatedID].assertNoProposal(t)

	// an isolated node cannot send either
	vote := helper.MakeVote(helper.WithVoteSignerID(isolatedID))
	require.NoError(t, f.conduits[isolatedID].SendVote(vote, senderID))
	select {
	case <-f.recorders[senderID].votes:
		t.Fatal("vote from isolated node must be dropped")
	case <-time.After(50 * time.Millisecond):
	}

	f.net.Restore(isolatedID)
	f.broadcast(t, senderID)
	f.recorders[isolatedID].awaitProposal(t)
}

func TestRequestBlock_RedeliversBroadcastProposal(t *testing.T) {
	f := newBusFixture(t, 3)
	senderID, requesterID := f.nodeIDs[0], f.nodeIDs[1]

	proposal := f.broadcast(t, senderID)
	for _, nodeID := range f.nodeIDs {
		f.recorders[nodeID].awaitProposal(t)
	}

	require.NoError(t, f.conduits[requesterID].RequestBlock(proposal.Block.BlockID))
	received := f.recorders[requesterID].awaitProposal(t)
	assert.Equal(t, proposal.Block.BlockID, received.proposal.Block.ID())

	// unknown blocks are silently ignored
	require.NoError(t, f.conduits[requesterID].RequestBlock(unittest.IdentifierFixture()))
	f.recorders[requesterID].assertNoProposal(t)
}
