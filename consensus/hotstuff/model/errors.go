package model

import (
	"errors"
	"fmt"

	"github.com/quiltchain/quilt-go/model/quilt"
)

var (
	// ErrInvalidSignature is a sentinel for signatures that fail
	// cryptographic verification.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrViewForUnknownEpoch is returned when a view is requested for an
	// epoch outside the locally known committee snapshots.
	ErrViewForUnknownEpoch = errors.New("by-view query for unknown epoch")
)

// NoVoteError contains the reason why the safety module decided not to
// vote for a proposal. It is a sentinel error, expected during normal
// operation: refusing to vote is how safety is preserved.
type NoVoteError struct {
	Msg string
}

func (e NoVoteError) Error() string { return e.Msg }

// IsNoVoteError returns whether an error is NoVoteError
func IsNoVoteError(err error) bool {
	var e NoVoteError
	return errors.As(err, &e)
}

// NoProposalError indicates that the block producer refused to build a
// proposal: this replica is not the leader for the view, or there are no
// pending commands and empty blocks are disabled. Expected during normal
// operation.
type NoProposalError struct {
	Msg string
}

func (e NoProposalError) Error() string { return e.Msg }

// IsNoProposalError returns whether an error is NoProposalError
func IsNoProposalError(err error) bool {
	var e NoProposalError
	return errors.As(err, &e)
}

// ConfigurationError indicates that a constructor or component was
// initialized with invalid or inconsistent parameters.
type ConfigurationError struct {
	err error
}

func NewConfigurationErrorf(msg string, args ...interface{}) error {
	return ConfigurationError{fmt.Errorf(msg, args...)}
}

func (e ConfigurationError) Error() string { return e.err.Error() }
func (e ConfigurationError) Unwrap() error { return e.err }

// IsConfigurationError returns whether err is a ConfigurationError
func IsConfigurationError(err error) bool {
	var e ConfigurationError
	return errors.As(err, &e)
}

// MissingBlockError indicates that no block with identifier `BlockID` is
// known locally. The caller is expected to trigger a sync request for the
// block; consensus progress on the affected branch stalls until resolved.
type MissingBlockError struct {
	View    uint64
	BlockID quilt.Identifier
}

func (e MissingBlockError) Error() string {
	return fmt.Sprintf("missing block at view %d with ID %v", e.View, e.BlockID)
}

// IsMissingBlockError returns whether an error is MissingBlockError
func IsMissingBlockError(err error) bool {
	var e MissingBlockError
	return errors.As(err, &e)
}

// InvalidBlockError indicates an invalid block proposal: wrong leader,
// malformed or stale justify. Invalid proposals are dropped without a
// vote; Byzantine leaders are expected and never halt the replica.
type InvalidBlockError struct {
	BlockID quilt.Identifier
	View    uint64
	Err     error
}

func (e InvalidBlockError) Error() string {
	return fmt.Sprintf("invalid block %x at view %d: %s", e.BlockID, e.View, e.Err.Error())
}

func (e InvalidBlockError) Unwrap() error {
	return e.Err
}

// IsInvalidBlockError returns whether an error is InvalidBlockError
func IsInvalidBlockError(err error) bool {
	var e InvalidBlockError
	return errors.As(err, &e)
}

// InvalidVoteError indicates an invalid vote: bad signature or a signer
// outside the committee. Invalid votes are dropped.
type InvalidVoteError struct {
	VoteID quilt.Identifier
	View   uint64
	Err    error
}

func NewInvalidVoteErrorf(vote *Vote, msg string, args ...interface{}) error {
	return InvalidVoteError{
		VoteID: vote.ID(),
		View:   vote.View,
		Err:    fmt.Errorf(msg, args...),
	}
}

func (e InvalidVoteError) Error() string {
	return fmt.Sprintf("invalid vote %x for view %d: %s", e.VoteID, e.View, e.Err.Error())
}

func (e InvalidVoteError) Unwrap() error {
	return e.Err
}

// IsInvalidVoteError returns whether an error is InvalidVoteError
func IsInvalidVoteError(err error) bool {
	var e InvalidVoteError
	return errors.As(err, &e)
}

// InvalidQCError indicates a quorum certificate with insufficient or
// invalid signatures. Invalid QCs are dropped and trigger no state change.
type InvalidQCError struct {
	BlockID quilt.Identifier
	View    uint64
	Err     error
}

func NewInvalidQCErrorf(qc *quilt.QuorumCertificate, msg string, args ...interface{}) error {
	return InvalidQCError{
		BlockID: qc.BlockID,
		View:    qc.View,
		Err:     fmt.Errorf(msg, args...),
	}
}

func (e InvalidQCError) Error() string {
	return fmt.Sprintf("invalid QC for block %x at view %d: %s", e.BlockID, e.View, e.Err.Error())
}

func (e InvalidQCError) Unwrap() error {
	return e.Err
}

// IsInvalidQCError returns whether an error is InvalidQCError
func IsInvalidQCError(err error) bool {
	var e InvalidQCError
	return errors.As(err, &e)
}

// ByzantineThresholdExceededError is raised if the engine detects
// conditions which prove that the Byzantine threshold of committee members
// has been exceeded, e.g. conflicting committed blocks. Safety can no
// longer be guaranteed; the replica must halt.
type ByzantineThresholdExceededError struct {
	Evidence string
}

func (e ByzantineThresholdExceededError) Error() string {
	return e.Evidence
}

// DoubleVoteError indicates that a committee member has voted for two
// different blocks in the same view.
type DoubleVoteError struct {
	FirstVote       *Vote
	ConflictingVote *Vote
	err             error
}

func (e DoubleVoteError) Error() string {
	return e.err.Error()
}

func (e DoubleVoteError) Unwrap() error {
	return e.err
}

// IsDoubleVoteError returns whether an error is DoubleVoteError
func IsDoubleVoteError(err error) bool {
	var e DoubleVoteError
	return errors.As(err, &e)
}

// AsDoubleVoteError determines whether the given error is a
// DoubleVoteError and returns it with the embedded evidence.
func AsDoubleVoteError(err error) (*DoubleVoteError, bool) {
	var e DoubleVoteError
	ok := errors.As(err, &e)
	if ok {
		return &e, true
	}
	return nil, false
}

func NewDoubleVoteErrorf(firstVote, conflictingVote *Vote, msg string, args ...interface{}) error {
	return DoubleVoteError{
		FirstVote:       firstVote,
		ConflictingVote: conflictingVote,
		err:             fmt.Errorf(msg, args...),
	}
}

// DuplicatedSignerError indicates that a signature from the same node ID
// has already been added. Duplicate votes are idempotent no-ops for QC
// construction.
type DuplicatedSignerError struct {
	err error
}

func NewDuplicatedSignerErrorf(msg string, args ...interface{}) error {
	return DuplicatedSignerError{err: fmt.Errorf(msg, args...)}
}

func (e DuplicatedSignerError) Error() string { return e.err.Error() }
func (e DuplicatedSignerError) Unwrap() error { return e.err }

// IsDuplicatedSignerError returns whether err is a DuplicatedSignerError
func IsDuplicatedSignerError(err error) bool {
	var e DuplicatedSignerError
	return errors.As(err, &e)
}

// InsufficientSignaturesError indicates that not enough signatures have
// been collected to complete the operation.
type InsufficientSignaturesError struct {
	err error
}

func NewInsufficientSignaturesErrorf(msg string, args ...interface{}) error {
	return InsufficientSignaturesError{fmt.Errorf(msg, args...)}
}

func (e InsufficientSignaturesError) Error() string { return e.err.Error() }
func (e InsufficientSignaturesError) Unwrap() error { return e.err }

// IsInsufficientSignaturesError returns whether err is an
// InsufficientSignaturesError
func IsInsufficientSignaturesError(err error) bool {
	var e InsufficientSignaturesError
	return errors.As(err, &e)
}

// InvalidSignerError indicates that the signer is not an authorized
// committee member for the epoch.
type InvalidSignerError struct {
	err error
}

func NewInvalidSignerErrorf(msg string, args ...interface{}) error {
	return InvalidSignerError{err: fmt.Errorf(msg, args...)}
}

func (e InvalidSignerError) Error() string { return e.err.Error() }
func (e InvalidSignerError) Unwrap() error { return e.err }

// IsInvalidSignerError returns whether err is an InvalidSignerError
func IsInvalidSignerError(err error) bool {
	var e InvalidSignerError
	return errors.As(err, &e)
}
