package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrInvalidTask = errors.New("invalid task number")
)
