package cli

import "errors"

// Sentinel kinds for command line errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
)
