package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound          = errors.New("snapshot not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrStore             = errors.New("snapshot store failed")
)
