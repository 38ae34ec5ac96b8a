package safetyrules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/mocks"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

func TestSafetyRules(t *testing.T) {
	suite.Run(t, new(SafetyRulesTestSuite))
}

type SafetyRulesTestSuite struct {
	suite.Suite

	ourIdentity *quilt.Identity
	signer      *mocks.Signer
	persist     *mocks.Persister
	committee   *mocks.Replicas
	safetyData  *hotstuff.SafetyData
	safety      *SafetyRules
}

func (s *SafetyRulesTestSuite) SetupTest() {
	s.ourIdentity = unittest.IdentityFixture()
	s.signer = mocks.NewSigner(s.T())
	s.persist = mocks.NewPersister(s.T())
	s.committee = mocks.NewReplicas(s.T())

	s.committee.On("Self").Return(s.ourIdentity.NodeID).Maybe()
	s.committee.On("Identity", mock.Anything, s.ourIdentity.NodeID).Return(s.ourIdentity, nil).Maybe()
	s.persist.On("PutSafetyData", mock.Anything).Return(nil).Maybe()

	s.safetyData = &hotstuff.SafetyData{
		LastVotedView: 0,
		LockedView:    0,
	}

	var err error
	s.safety, err = New(s.signer, s.persist, s.committee, s.safetyData)
	require.NoError(s.T(), err)
}

// makeProposal returns a proposal at the given view whose justify
// certifies the given (lockedView, lockedBlockID) pair.
func (s *SafetyRulesTestSuite) makeProposal(view, justifyView uint64) *model.Proposal {
	block := helper.MakeBlock(helper.WithBlockView(view))
	block.QC = helper.MakeQC(helper.WithQCView(justifyView))
	return helper.MakeProposal(helper.WithBlock(block))
}

func (s *SafetyRulesTestSuite) expectVote(proposal *model.Proposal) *model.Vote {
	vote := helper.MakeVote(
		helper.WithVoteView(proposal.Block.View),
		helper.WithVoteBlockID(proposal.Block.BlockID),
		helper.WithVoteSignerID(s.ourIdentity.NodeID),
	)
	s.signer.On("CreateVote", proposal.Block).Return(vote, nil).Once()
	return vote
}

// TestProduceVote_HappyPath verifies that a safe proposal for the current
// view yields a vote and advances last-voted view and lock.
func (s *SafetyRulesTestSuite) TestProduceVote_HappyPath() {
	proposal := s.makeProposal(5, 4)
	expected := s.expectVote(proposal)

	vote, err := s.safety.ProduceVote(proposal, 5)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expected, vote)
	require.Equal(s.T(), uint64(5), s.safetyData.LastVotedView)
	require.Equal(s.T(), uint64(4), s.safetyData.LockedView)
	require.Equal(s.T(), proposal.Block.QC.BlockID, s.safetyData.LockedBlockID)
}

// TestProduceVote_MismatchingView verifies that asking for a vote on a
// proposal that is not for the current view is an internal error, not a
// NoVoteError.
func (s *SafetyRulesTestSuite) TestProduceVote_MismatchingView() {
	proposal := s.makeProposal(5, 4)
	_, err := s.safety.ProduceVote(proposal, 6)
	require.Error(s.T(), err)
	require.False(s.T(), model.IsNoVoteError(err))
}

// TestProduceVote_NoDoubleVote verifies that at most one vote is produced
// per view, also for distinct proposals.
func (s *SafetyRulesTestSuite) TestProduceVote_NoDoubleVote() {
	proposal := s.makeProposal(5, 4)
	s.expectVote(proposal)

	_, err := s.safety.ProduceVote(proposal, 5)
	require.NoError(s.T(), err)

	// same proposal again
	_, err = s.safety.ProduceVote(proposal, 5)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsNoVoteError(err))

	// a conflicting proposal for the same view
	conflicting := s.makeProposal(5, 4)
	_, err = s.safety.ProduceVote(conflicting, 5)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsNoVoteError(err))

	// a proposal for a lower view
	older := s.makeProposal(4, 3)
	_, err = s.safety.ProduceVote(older, 4)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsNoVoteError(err))
}

// TestProduceVote_LockRule verifies that proposals whose justify certifies
// a view below the lock are refused, while a justify certifying the locked
// block itself is accepted.
func (s *SafetyRulesTestSuite) TestProduceVote_LockRule() {
	// vote on a proposal locking us on its justify (view 8)
	proposal := s.makeProposal(9, 8)
	s.expectVote(proposal)
	_, err := s.safety.ProduceVote(proposal, 9)
	require.NoError(s.T(), err)
	require.Equal(s.T(), uint64(8), s.safetyData.LockedView)

	// a later proposal with a justify below the lock is refused
	stale := s.makeProposal(10, 7)
	_, err = s.safety.ProduceVote(stale, 10)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsNoVoteError(err))

	// a proposal extending the locked block directly is accepted
	extending := s.makeProposal(11, 8)
	extending.Block.QC.BlockID = s.safetyData.LockedBlockID
	s.expectVote(extending)
	_, err = s.safety.ProduceVote(extending, 11)
	require.NoError(s.T(), err)
}

// TestProduceVote_LockNeverRegresses verifies that voting for a proposal
// with an older (but safe) justify does not move the lock backwards.
func (s *SafetyRulesTestSuite) TestProduceVote_LockNeverRegresses() {
	proposal := s.makeProposal(9, 8)
	s.expectVote(proposal)
	_, err := s.safety.ProduceVote(proposal, 9)
	require.NoError(s.T(), err)
	lockedID := s.safetyData.LockedBlockID

	extending := s.makeProposal(11, 8)
	extending.Block.QC.BlockID = lockedID
	s.expectVote(extending)
	_, err = s.safety.ProduceVote(extending, 11)
	require.NoError(s.T(), err)
	require.Equal(s.T(), uint64(8), s.safetyData.LockedView)
	require.Equal(s.T(), lockedID, s.safetyData.LockedBlockID)
}

// TestProduceVote_NotCommitteeMember verifies that a replica without
// membership for the block's epoch stays silent.
func (s *SafetyRulesTestSuite) TestProduceVote_NotCommitteeMember() {
	s.committee = mocks.NewReplicas(s.T())
	s.committee.On("Self").Return(s.ourIdentity.NodeID)
	s.committee.On("Identity", mock.Anything, s.ourIdentity.NodeID).
		Return(nil, model.NewInvalidSignerErrorf("not a member"))

	var err error
	s.safety, err = New(s.signer, s.persist, s.committee, s.safetyData)
	require.NoError(s.T(), err)

	proposal := s.makeProposal(5, 4)
	_, err = s.safety.ProduceVote(proposal, 5)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsNoVoteError(err))
}

// TestProduceVote_PersistBeforeRelease verifies that a failing persister
// suppresses the vote: without durability there is no voting promise.
func (s *SafetyRulesTestSuite) TestProduceVote_PersistBeforeRelease() {
	s.persist = mocks.NewPersister(s.T())
	exception := errors.New("persister out of disk")
	s.persist.On("PutSafetyData", mock.Anything).Return(exception)

	var err error
	s.safety, err = New(s.signer, s.persist, s.committee, s.safetyData)
	require.NoError(s.T(), err)

	proposal := s.makeProposal(5, 4)
	s.expectVote(proposal)
	vote, err := s.safety.ProduceVote(proposal, 5)
	require.Nil(s.T(), vote)
	require.ErrorIs(s.T(), err, exception)
	require.False(s.T(), model.IsNoVoteError(err))
}
