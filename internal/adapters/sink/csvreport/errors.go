package csvreport

import "errors"

// Sentinel kinds for report output errors.
var (
	ErrCreate = errors.New("could not create output file")
	ErrWrite  = errors.New("write report failed")
)
