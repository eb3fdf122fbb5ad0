package nested

import "errors"

// Sentinel kinds for extracurricular input errors.
var (
	ErrFileOpen = errors.New("could not open extracurricular file")
	ErrRead     = errors.New("read extracurricular file failed")
)
