// Package forks implements the in-memory block tree above the last
// committed block and the finality rule of the consensus protocol.
//
// A block B0 is committed as soon as it is the root of a certified
// 3-chain with consecutive views: B0 <- B1 <- B2, where B1 and B2 are
// certified, B1.View == B0.View+1 and B2.View == B1.View+1. The
// consecutive-view requirement is what makes the rule safe under leader
// failures: view gaps indicate that conflicting proposals may exist.
package forks

import (
	"fmt"

	"github.com/quiltchain/quilt-go/consensus/hotstuff"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/model"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module"
)

// DefaultMaxChainDepth bounds the ancestor walk of a single commit. A
// replica that fell behind by more than this many blocks cannot catch up
// through a single 3-chain and has to resync instead.
const DefaultMaxChainDepth = 10000

// Forks implements hotstuff.Forks. Blocks at or below the latest committed
// view are pruned; the tree never shrinks otherwise.
//
// Not concurrency safe.
type Forks struct {
	notifier             hotstuff.FinalizationConsumer
	finalizationCallback module.Finalizer
	maxChainDepth        uint64

	proposals map[quilt.Identifier]*model.Proposal
	viewIndex map[uint64][]*model.Proposal
	// certifyingQCs holds, per certified block, one QC certifying it
	certifyingQCs map[quilt.Identifier]*quilt.QuorumCertificate

	finalizedBlock *model.Block
	newestView     uint64
}

var _ hotstuff.Forks = (*Forks)(nil)

// Option customizes a Forks instance.
type Option func(*Forks)

// WithMaxChainDepth overrides the bound on the ancestor walk of a single
// commit.
func WithMaxChainDepth(depth uint64) Option {
	return func(f *Forks) {
		f.maxChainDepth = depth
	}
}

// New creates a Forks instance with the given trusted root. The root block
// is the latest committed block of this replica (the genesis block during
// bootstrapping) and its QC is the certificate the rest of the chain grows
// from.
func New(trustedRoot *model.CertifiedBlock, finalizationCallback module.Finalizer, notifier hotstuff.FinalizationConsumer, options ...Option) (*Forks, error) {
	if trustedRoot.Block.BlockID != trustedRoot.QC.BlockID || trustedRoot.Block.View != trustedRoot.QC.View {
		return nil, model.NewConfigurationErrorf("invalid root: QC must certify the root block")
	}

	forks := Forks{
		notifier:             notifier,
		finalizationCallback: finalizationCallback,
		maxChainDepth:        DefaultMaxChainDepth,
		proposals:            make(map[quilt.Identifier]*model.Proposal),
		viewIndex:            make(map[uint64][]*model.Proposal),
		certifyingQCs:        make(map[quilt.Identifier]*quilt.QuorumCertificate),
		finalizedBlock:       trustedRoot.Block,
		newestView:           trustedRoot.Block.View,
	}
	for _, option := range options {
		option(&forks)
	}

	// the root block is stored so that its direct children can connect
	rootProposal := &model.Proposal{Block: trustedRoot.Block}
	forks.proposals[trustedRoot.Block.BlockID] = rootProposal
	forks.viewIndex[trustedRoot.Block.View] = []*model.Proposal{rootProposal}
	forks.certifyingQCs[trustedRoot.Block.BlockID] = trustedRoot.QC

	return &forks, nil
}

// FinalizedView returns the view of the latest committed block.
func (f *Forks) FinalizedView() uint64 {
	return f.finalizedBlock.View
}

// FinalizedBlock returns the latest committed block.
func (f *Forks) FinalizedBlock() *model.Block {
	return f.finalizedBlock
}

// NewestView returns the view of the newest stored block or QC.
func (f *Forks) NewestView() uint64 {
	return f.newestView
}

// GetProposal returns the stored proposal with the given block ID.
func (f *Forks) GetProposal(blockID quilt.Identifier) (*model.Proposal, bool) {
	proposal, found := f.proposals[blockID]
	return proposal, found
}

// GetProposalsForView returns all known proposals for the given view. More
// than one proposal is evidence of leader equivocation.
func (f *Forks) GetProposalsForView(view uint64) []*model.Proposal {
	return f.viewIndex[view]
}

// AddProposal adds the proposal to the block tree and incorporates its
// embedded justify QC. Proposals at or below the latest committed view are
// dropped as stale.
// Error returns:
//   - model.MissingBlockError if the proposal's parent is above the
//     committed view but unknown; the caller should request a sync
//   - model.ByzantineThresholdExceededError if the resulting tree commits
//     a block conflicting with an already-committed block
func (f *Forks) AddProposal(proposal *model.Proposal) error {
	block := proposal.Block
	if block.QC == nil {
		return fmt.Errorf("block %x misses the justify QC", block.BlockID)
	}
	if block.View <= f.FinalizedView() {
		return nil
	}
	if _, known := f.proposals[block.BlockID]; known {
		return nil
	}
	if block.QC.View < f.FinalizedView() {
		// the block extends a fork that was pruned by finalization; an
		// honest quorum can no longer certify it
		return nil
	}
	if _, parentKnown := f.proposals[block.QC.BlockID]; !parentKnown {
		return model.MissingBlockError{View: block.QC.View, BlockID: block.QC.BlockID}
	}

	// equivocation detection: another proposal for the same view
	for _, other := range f.viewIndex[block.View] {
		if other.Block.BlockID != block.BlockID {
			f.notifier.OnDoubleProposeDetected(block, other.Block)
			break
		}
	}

	f.proposals[block.BlockID] = proposal
	f.viewIndex[block.View] = append(f.viewIndex[block.View], proposal)
	if block.View > f.newestView {
		f.newestView = block.View
	}
	f.notifier.OnBlockIncorporated(block)

	// the justify certifies the parent and may complete a 3-chain
	err := f.incorporateQC(block.QC)
	if err != nil {
		return fmt.Errorf("could not incorporate justify of block %x: %w", block.BlockID, err)
	}
	return nil
}

// AddQC incorporates a QC obtained from vote aggregation or a new-view
// message. Stale QCs (at or below the committed view) are no-ops.
// Error returns:
//   - model.MissingBlockError if the certified block is unknown
//   - model.ByzantineThresholdExceededError if the QC commits a block
//     conflicting with an already-committed block
func (f *Forks) AddQC(qc *quilt.QuorumCertificate) error {
	return f.incorporateQC(qc)
}

func (f *Forks) incorporateQC(qc *quilt.QuorumCertificate) error {
	if qc.View <= f.FinalizedView() {
		return nil
	}
	certified, known := f.proposals[qc.BlockID]
	if !known {
		return model.MissingBlockError{View: qc.View, BlockID: qc.BlockID}
	}
	if _, certifiedAlready := f.certifyingQCs[qc.BlockID]; certifiedAlready {
		return nil
	}

	f.certifyingQCs[qc.BlockID] = qc
	if qc.View > f.newestView {
		f.newestView = qc.View
	}
	f.notifier.OnQcIncorporated(qc)

	return f.checkCommitRule(certified.Block)
}

// checkCommitRule evaluates the finality rule with the given block as the
// newest certified block of a potential 3-chain. With b2 certified, the
// chain b0 <- b1 <- b2 commits b0 iff the three views are consecutive.
func (f *Forks) checkCommitRule(b2 *model.Block) error {
	b1Proposal, found := f.proposals[b2.QC.BlockID]
	if !found {
		// the parent was pruned by finalization; no new commit
		return nil
	}
	b1 := b1Proposal.Block
	if b1.QC == nil {
		return nil
	}
	b0Proposal, found := f.proposals[b1.QC.BlockID]
	if !found {
		return nil
	}
	b0 := b0Proposal.Block

	if b2.View != b1.View+1 || b1.View != b0.View+1 {
		return nil
	}
	return f.finalizeUpTo(b0)
}

// finalizeUpTo commits all uncommitted ancestors of the given block,
// including the block itself, in ascending height order, and prunes the
// tree. The walk is iterative and bounded by maxChainDepth, so a deep tail
// accumulated during a long partition cannot exhaust the stack.
// Error returns:
//   - model.ByzantineThresholdExceededError if the chain conflicts with
//     an already-committed block; with less than 1/3 Byzantine weight,
//     two conflicting chains can never both satisfy the commit rule
func (f *Forks) finalizeUpTo(block *model.Block) error {

	// collect the uncommitted tail, newest first, down to the committed
	// boundary
	chain := make([]*model.Block, 0, 3)
	for block.View > f.FinalizedView() {
		if uint64(len(chain)) >= f.maxChainDepth {
			return fmt.Errorf("commit walk from block %x exceeds %d blocks without reaching committed block %x",
				block.BlockID, f.maxChainDepth, f.finalizedBlock.BlockID)
		}
		chain = append(chain, block)

		parent, found := f.proposals[block.QC.BlockID]
		if !found {
			return model.ByzantineThresholdExceededError{
				Evidence: fmt.Sprintf("committing block %x (view %d) disconnected from committed block %x (view %d)",
					block.BlockID, block.View, f.finalizedBlock.BlockID, f.finalizedBlock.View),
			}
		}
		block = parent.Block
	}

	// walking backwards, we must reach the committed block itself;
	// reaching a different block means two conflicting chains were
	// committed
	if block.BlockID != f.finalizedBlock.BlockID {
		return model.ByzantineThresholdExceededError{
			Evidence: fmt.Sprintf("finality of block %x (view %d) conflicts with committed block %x (view %d)",
				block.BlockID, block.View, f.finalizedBlock.BlockID, f.finalizedBlock.View),
		}
	}

	// commit in ascending order, oldest ancestor first
	for i := len(chain) - 1; i >= 0; i-- {
		commit := chain[i]
		f.finalizedBlock = commit
		f.pruneUpToView(commit.View)

		err := f.finalizationCallback.MakeFinal(commit.BlockID)
		if err != nil {
			return fmt.Errorf("could not persist finalization of block %x: %w", commit.BlockID, err)
		}
		f.notifier.OnFinalizedBlock(commit)
	}
	return nil
}

// pruneUpToView removes all proposals and certificates for views strictly
// below the given view. The committed block itself is retained so its
// children can still connect.
func (f *Forks) pruneUpToView(view uint64) {
	for pruneView, proposals := range f.viewIndex {
		if pruneView >= view {
			continue
		}
		for _, proposal := range proposals {
			delete(f.proposals, proposal.Block.BlockID)
			delete(f.certifyingQCs, proposal.Block.BlockID)
		}
		delete(f.viewIndex, pruneView)
	}
	// drop any siblings of the committed block at its own view
	retained := f.viewIndex[view][:0]
	for _, proposal := range f.viewIndex[view] {
		if proposal.Block.BlockID == f.finalizedBlock.BlockID {
			retained = append(retained, proposal)
			continue
		}
		delete(f.proposals, proposal.Block.BlockID)
		delete(f.certifyingQCs, proposal.Block.BlockID)
	}
	f.viewIndex[view] = retained
}
