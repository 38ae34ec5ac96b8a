package module

import (
	"errors"
)

// ErrNoCommands is returned by Builder.BuildOn when no commands are
// pending and empty blocks are disabled.
var ErrNoCommands = errors.New("no commands pending")
