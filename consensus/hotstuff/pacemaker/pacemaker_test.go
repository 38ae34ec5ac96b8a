package pacemaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/mocks"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker/timeout"
	"github.com/quiltchain/quilt-go/model/quilt"
)

const (
	minRepTimeout             float64 = 100.0
	maxRepTimeout             float64 = 10000.0
	timeoutAdjustmentFactor   float64 = 1.5
	happyPathMaxRoundFailures uint64  = 3
	startView                 uint64  = 3
)

func TestActivePaceMaker(t *testing.T) {
	suite.Run(t, new(ActivePaceMakerTestSuite))
}

type ActivePaceMakerTestSuite struct {
	suite.Suite

	initialQC *quilt.QuorumCertificate
	notifier  *mocks.Consumer
	persist   *mocks.Persister
	pacemaker *ActivePaceMaker
}

func (s *ActivePaceMakerTestSuite) SetupTest() {
	s.initialQC = helper.MakeQC(helper.WithQCView(startView - 1))
	s.notifier = mocks.NewConsumer(s.T())
	s.persist = mocks.NewPersister(s.T())

	s.notifier.On("OnStartingTimeout", mock.Anything).Return().Maybe()
	s.persist.On("PutLivenessData", mock.Anything).Return(nil).Maybe()

	tc, err := timeout.NewConfig(
		time.Duration(minRepTimeout*1e6),
		time.Duration(maxRepTimeout*1e6),
		timeoutAdjustmentFactor,
		happyPathMaxRoundFailures,
	)
	require.NoError(s.T(), err)

	s.pacemaker, err = New(
		&hotstuff.LivenessData{CurrentView: startView, NewestQC: s.initialQC},
		timeout.NewController(tc),
		s.notifier,
		s.persist,
	)
	require.NoError(s.T(), err)
	s.pacemaker.Start()
}

func qcForView(view uint64) *quilt.QuorumCertificate {
	return helper.MakeQC(helper.WithQCView(view))
}

// TestProcessQC_SkipIncreaseViewThroughQC verifies that a QC for the
// current view, as well as a QC skipping ahead several views, advances the
// pacemaker to the view after the QC.
func (s *ActivePaceMakerTestSuite) TestProcessQC_SkipIncreaseViewThroughQC() {
	qc := qcForView(startView)
	s.notifier.On("OnQcTriggeredViewChange", qc, uint64(startView+1)).Return().Once()
	nve, err := s.pacemaker.ProcessQC(qc)
	require.NoError(s.T(), err)
	require.Equal(s.T(), &model.NewViewEvent{View: startView + 1}, nve)
	require.Equal(s.T(), startView+1, s.pacemaker.CurView())
	require.Equal(s.T(), qc, s.pacemaker.NewestQC())

	// skip ahead many views at once
	qc = qcForView(startView + 12)
	s.notifier.On("OnQcTriggeredViewChange", qc, uint64(startView+13)).Return().Once()
	nve, err = s.pacemaker.ProcessQC(qc)
	require.NoError(s.T(), err)
	require.Equal(s.T(), &model.NewViewEvent{View: startView + 13}, nve)
	require.Equal(s.T(), startView+13, s.pacemaker.CurView())
	require.Equal(s.T(), qc, s.pacemaker.NewestQC())
}

// TestProcessQC_IgnoreOldQC verifies that a QC below the current view
// neither advances the view nor emits a NewViewEvent.
func (s *ActivePaceMakerTestSuite) TestProcessQC_IgnoreOldQC() {
	nve, err := s.pacemaker.ProcessQC(qcForView(startView - 2))
	require.NoError(s.T(), err)
	require.Nil(s.T(), nve)
	require.Equal(s.T(), startView, s.pacemaker.CurView())
	require.Equal(s.T(), s.initialQC, s.pacemaker.NewestQC())
}

// TestProcessQC_PersistsLivenessData verifies that every view change is
// persisted before the NewViewEvent is emitted.
func (s *ActivePaceMakerTestSuite) TestProcessQC_PersistsLivenessData() {
	qc := qcForView(startView)
	s.notifier.On("OnQcTriggeredViewChange", qc, uint64(startView+1)).Return().Once()

	persisted := false
	s.persist.On("PutLivenessData", mock.Anything).Run(func(args mock.Arguments) {
		livenessData := args.Get(0).(*hotstuff.LivenessData)
		require.Equal(s.T(), startView+1, livenessData.CurrentView)
		require.Equal(s.T(), qc, livenessData.NewestQC)
		persisted = true
	}).Return(nil).Once()

	_, err := s.pacemaker.ProcessQC(qc)
	require.NoError(s.T(), err)
	require.True(s.T(), persisted)
}

// TestOnTimeout verifies that a timeout advances the pacemaker by exactly
// one view, without changing the newest QC.
func (s *ActivePaceMakerTestSuite) TestOnTimeout() {
	nve, err := s.pacemaker.OnTimeout()
	require.NoError(s.T(), err)
	require.Equal(s.T(), &model.NewViewEvent{View: startView + 1}, nve)
	require.Equal(s.T(), startView+1, s.pacemaker.CurView())
	require.Equal(s.T(), s.initialQC, s.pacemaker.NewestQC())
}

// TestNewestQCNeverRegresses verifies that view changes without a fresh QC
// keep the newest known QC untouched.
func (s *ActivePaceMakerTestSuite) TestNewestQCNeverRegresses() {
	highQC := qcForView(startView + 20)
	s.notifier.On("OnQcTriggeredViewChange", mock.Anything, mock.Anything).Return()
	_, err := s.pacemaker.ProcessQC(highQC)
	require.NoError(s.T(), err)

	for i := 0; i < 5; i++ {
		_, err = s.pacemaker.OnTimeout()
		require.NoError(s.T(), err)
		require.Equal(s.T(), highQC, s.pacemaker.NewestQC())
	}
}

// TestStartIdempotent verifies that starting the pacemaker twice does not
// restart the current view's timer.
func (s *ActivePaceMakerTestSuite) TestStartIdempotent() {
	ch := s.pacemaker.TimeoutChannel()
	s.pacemaker.Start()
	require.Equal(s.T(), ch, s.pacemaker.TimeoutChannel())
}

// TestInvalidConstruction verifies the constructor rejects invalid
// recovery states.
func (s *ActivePaceMakerTestSuite) TestInvalidConstruction() {
	_, err := New(
		&hotstuff.LivenessData{CurrentView: 0, NewestQC: s.initialQC},
		timeout.DefaultController(),
		s.notifier, s.persist,
	)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsConfigurationError(err))

	_, err = New(
		&hotstuff.LivenessData{CurrentView: startView, NewestQC: nil},
		timeout.DefaultController(),
		s.notifier, s.persist,
	)
	require.Error(s.T(), err)
	require.True(s.T(), model.IsConfigurationError(err))
}
