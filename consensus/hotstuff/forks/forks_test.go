package forks

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quiltchain/quilt-go/consensus/hotstuff/helper"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/mocks"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
	module_mocks "github.com/quiltchain/quilt-go/module/mocks"
	"github.com/quiltchain/quilt-go/utils/unittest"
)

// forksFixture wires a Forks instance rooted at a synthetic committed
// block at view 0.
type forksFixture struct {
	root      *model.CertifiedBlock
	notifier  *mocks.Consumer
	finalizer *module_mocks.Finalizer
	forks     *Forks
	finalized []quilt.Identifier
}

func newForksFixture(t *testing.T) *forksFixture {
	f := &forksFixture{}

	rootBlock := &model.Block{
		View:        0,
		BlockID:     unittest.IdentifierFixture(),
		ProposerID:  quilt.ZeroID,
		Height:      0,
		Epoch:       1,
		PayloadHash: unittest.IdentifierFixture(),
	}
	f.root = &model.CertifiedBlock{
		Block: rootBlock,
		QC:    quilt.GenesisQC(rootBlock.BlockID),
	}

	f.notifier = mocks.NewConsumer(t)
	f.notifier.On("OnBlockIncorporated", mock.Anything).Return().Maybe()
	f.notifier.On("OnQcIncorporated", mock.Anything).Return().Maybe()
	f.notifier.On("OnFinalizedBlock", mock.Anything).Return().Maybe()

	f.finalizer = module_mocks.NewFinalizer(t)
	f.finalizer.On("MakeFinal", mock.Anything).Run(func(args mock.Arguments) {
		f.finalized = append(f.finalized, args.Get(0).(quilt.Identifier))
	}).Return(nil).Maybe()

	var err error
	f.forks, err = New(f.root, f.finalizer, f.notifier)
	require.NoError(t, err)
	return f
}

// child returns a proposal extending the given parent at the given view.
func child(parent *model.Block, view uint64) *model.Proposal {
	block := helper.MakeBlock(
		helper.WithBlockView(view),
		helper.WithBlockQC(helper.MakeQC(helper.WithQCBlock(parent))),
	)
	block.Height = parent.Height + 1
	return helper.MakeProposal(helper.WithBlock(block))
}

// qcFor returns a QC certifying the given proposal's block.
func qcFor(proposal *model.Proposal) *quilt.QuorumCertificate {
	return helper.MakeQC(helper.WithQCBlock(proposal.Block))
}

// TestForks_CommitThreeChain verifies the finality rule: with blocks
// B1 <- B2 <- B3 at consecutive views, the QC for B3 commits B1.
func TestForks_CommitThreeChain(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b2 := child(b1.Block, 2)
	b3 := child(b2.Block, 3)

	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b2))
	require.NoError(t, f.forks.AddProposal(b3))
	require.Equal(t, uint64(0), f.forks.FinalizedView())
	require.Empty(t, f.finalized)

	require.NoError(t, f.forks.AddQC(qcFor(b3)))
	require.Equal(t, uint64(1), f.forks.FinalizedView())
	require.Equal(t, b1.Block.BlockID, f.forks.FinalizedBlock().BlockID)
	require.Equal(t, []quilt.Identifier{b1.Block.BlockID}, f.finalized)
}

// TestForks_CommitCascade verifies that committing a block also commits
// its uncommitted ancestors, in ascending order.
func TestForks_CommitCascade(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	// gap between b1 and b2 prevents earlier finalization of b1
	b2 := child(b1.Block, 3)
	b3 := child(b2.Block, 4)
	b4 := child(b3.Block, 5)

	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b2))
	require.NoError(t, f.forks.AddProposal(b3))
	require.NoError(t, f.forks.AddProposal(b4))
	require.Empty(t, f.finalized)

	// b2 <- b3 <- b4 is a consecutive 3-chain, committing b2 and thereby b1
	require.NoError(t, f.forks.AddQC(qcFor(b4)))
	require.Equal(t, []quilt.Identifier{b1.Block.BlockID, b2.Block.BlockID}, f.finalized)
	require.Equal(t, b2.Block.BlockID, f.forks.FinalizedBlock().BlockID)
}

// TestForks_CommitDeepTail verifies that a single commit can walk an
// arbitrarily deep uncommitted tail, as accumulated during a long
// partition, and reports every block in ascending order.
func TestForks_CommitDeepTail(t *testing.T) {
	f := newForksFixture(t)

	// view gaps keep the whole chain uncommitted
	const tailLength = 100
	parent := f.root.Block
	for view := uint64(2); view <= 2*tailLength; view += 2 {
		proposal := child(parent, view)
		require.NoError(t, f.forks.AddProposal(proposal))
		parent = proposal.Block
	}
	require.Empty(t, f.finalized)

	// a consecutive 3-chain at the tip commits the entire tail at once
	t1 := child(parent, 2*tailLength+1)
	t2 := child(t1.Block, 2*tailLength+2)
	t3 := child(t2.Block, 2*tailLength+3)
	require.NoError(t, f.forks.AddProposal(t1))
	require.NoError(t, f.forks.AddProposal(t2))
	require.NoError(t, f.forks.AddProposal(t3))
	require.NoError(t, f.forks.AddQC(qcFor(t3)))

	require.Len(t, f.finalized, tailLength+1)
	require.Equal(t, t1.Block.BlockID, f.finalized[len(f.finalized)-1])
	require.Equal(t, t1.Block.BlockID, f.forks.FinalizedBlock().BlockID)
}

// TestForks_CommitDepthBounded verifies that the ancestor walk of a
// commit fails cleanly once it exceeds the configured chain depth.
func TestForks_CommitDepthBounded(t *testing.T) {
	f := newForksFixture(t)
	bounded, err := New(f.root, f.finalizer, f.notifier, WithMaxChainDepth(3))
	require.NoError(t, err)

	parent := f.root.Block
	for view := uint64(2); view <= 10; view += 2 {
		proposal := child(parent, view)
		require.NoError(t, bounded.AddProposal(proposal))
		parent = proposal.Block
	}
	t1 := child(parent, 11)
	t2 := child(t1.Block, 12)
	t3 := child(t2.Block, 13)
	require.NoError(t, bounded.AddProposal(t1))
	require.NoError(t, bounded.AddProposal(t2))
	require.NoError(t, bounded.AddProposal(t3))

	// committing t1 would walk back six blocks, twice the allowed depth
	require.Error(t, bounded.AddQC(qcFor(t3)))
	require.Empty(t, f.finalized)
}

// TestForks_NoCommitOnViewGap verifies that a certified 3-chain with a
// view gap does not commit.
func TestForks_NoCommitOnViewGap(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b2 := child(b1.Block, 2)
	b3 := child(b2.Block, 4) // gap: view 4 instead of 3

	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b2))
	require.NoError(t, f.forks.AddProposal(b3))
	require.NoError(t, f.forks.AddQC(qcFor(b3)))

	require.Equal(t, uint64(0), f.forks.FinalizedView())
	require.Empty(t, f.finalized)
}

// TestForks_MissingParent verifies that a proposal with an unknown parent
// above the committed view yields MissingBlockError.
func TestForks_MissingParent(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b2 := child(b1.Block, 2)

	// b1 was never added
	err := f.forks.AddProposal(b2)
	require.Error(t, err)
	require.True(t, model.IsMissingBlockError(err))
}

// TestForks_IgnoreStale verifies that proposals and QCs at or below the
// committed view are dropped without error.
func TestForks_IgnoreStale(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b2 := child(b1.Block, 2)
	b3 := child(b2.Block, 3)
	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b2))
	require.NoError(t, f.forks.AddProposal(b3))
	require.NoError(t, f.forks.AddQC(qcFor(b3)))
	require.Equal(t, uint64(1), f.forks.FinalizedView())

	// a conflicting proposal at the committed view is stale
	stale := child(f.root.Block, 1)
	require.NoError(t, f.forks.AddProposal(stale))
	_, found := f.forks.GetProposal(stale.Block.BlockID)
	require.False(t, found)

	// a stale QC is a no-op
	require.NoError(t, f.forks.AddQC(qcFor(b1)))
	require.Equal(t, uint64(1), f.forks.FinalizedView())
}

// TestForks_DoubleProposeDetected verifies that two proposals for the same
// view trigger the equivocation notification but are both stored.
func TestForks_DoubleProposeDetected(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b1Alt := child(f.root.Block, 1)

	detected := false
	f.notifier.On("OnDoubleProposeDetected", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		detected = true
	}).Return().Once()

	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b1Alt))
	require.True(t, detected)
	require.Len(t, f.forks.GetProposalsForView(1), 2)
}

// TestForks_IdempotentAdd verifies that re-adding known proposals and QCs
// has no effect.
func TestForks_IdempotentAdd(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b1))
	require.Len(t, f.forks.GetProposalsForView(1), 1)

	qc := qcFor(b1)
	require.NoError(t, f.forks.AddQC(qc))
	require.NoError(t, f.forks.AddQC(qc))
	require.Equal(t, uint64(1), f.forks.NewestView())
}

// TestForks_NewestView verifies that the newest view tracks both blocks
// and QCs.
func TestForks_NewestView(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 7)
	require.NoError(t, f.forks.AddProposal(b1))
	require.Equal(t, uint64(7), f.forks.NewestView())
	require.NoError(t, f.forks.AddQC(qcFor(b1)))
	require.Equal(t, uint64(7), f.forks.NewestView())
}

// TestForks_PruneSiblings verifies that committing a block prunes the
// conflicting forks below and at the committed view.
func TestForks_PruneSiblings(t *testing.T) {
	f := newForksFixture(t)
	b1 := child(f.root.Block, 1)
	b1Sibling := child(f.root.Block, 1)
	b2 := child(b1.Block, 2)
	b3 := child(b2.Block, 3)

	f.notifier.On("OnDoubleProposeDetected", mock.Anything, mock.Anything).Return().Maybe()
	require.NoError(t, f.forks.AddProposal(b1))
	require.NoError(t, f.forks.AddProposal(b1Sibling))
	require.NoError(t, f.forks.AddProposal(b2))
	require.NoError(t, f.forks.AddProposal(b3))
	require.NoError(t, f.forks.AddQC(qcFor(b3)))

	require.Equal(t, b1.Block.BlockID, f.forks.FinalizedBlock().BlockID)
	_, found := f.forks.GetProposal(b1Sibling.Block.BlockID)
	require.False(t, found)
	_, found = f.forks.GetProposal(f.root.Block.BlockID)
	require.False(t, found)
	_, found = f.forks.GetProposal(b1.Block.BlockID)
	require.True(t, found)
}
