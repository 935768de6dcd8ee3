package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoStore  = errors.New("no snapshot store configured")
	ErrRestore  = errors.New("restore failed")
	ErrNotFound = errors.New("not found")
)
