package quilt

// Payload is the ordered list of commands carried by a block.
type Payload struct {
	Commands []Command
}

// EmptyPayload returns a payload with no commands.
func EmptyPayload() Payload {
	return Payload{}
}

// Hash returns the hash of the payload.
func (p Payload) Hash() Identifier {
	ids := make([]Identifier, 0, len(p.Commands))
	for _, cmd := range p.Commands {
		ids = append(ids, cmd.ID())
	}
	return ConcatSum(ids...)
}
