package quilt

// Command is one ledger command (transaction) carried by a block payload.
// The consensus core treats the script as opaque bytes; admission, fee
// prioritization and execution are the mempool's and the application
// layer's concern.
type Command struct {
	// Script is the opaque, application-defined command body.
	Script []byte
	// ReferenceHeight is the committed height the submitter built against,
	// used by the mempool for expiry.
	ReferenceHeight uint64
}

// ID returns a unique identifier for the command.
func (c Command) ID() Identifier {
	return MakeID(c)
}
