package model

import (
	"time"

	"github.com/quiltchain/quilt-go/model/quilt"
)

// NewViewEvent indicates that the pacemaker has entered a new view.
type NewViewEvent struct {
	View uint64
}

// TimerInfo describes a running view timer.
type TimerInfo struct {
	View      uint64
	StartTime time.Time
	Duration  time.Duration
}

// NewView is the consensus model of a new-view message: a replica gave up
// on the current view and shares its highest known QC so that the next
// leader can extend the freshest certified block.
type NewView struct {
	View      uint64
	SignerID  quilt.Identifier
	HighestQC *quilt.QuorumCertificate
}
