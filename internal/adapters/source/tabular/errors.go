package tabular

import "errors"

// Sentinel kinds for curricular input errors.
var (
	ErrFileOpen = errors.New("could not open curricular file")
	ErrRead     = errors.New("read curricular file failed")
)
