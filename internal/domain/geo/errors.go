package geo

import "errors"

// Sentinel kinds for graph errors.
var (
	ErrUnknownLocation = errors.New("unknown location")
)
