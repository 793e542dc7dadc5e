package evm

import "errors"

var (
	// ErrNoBaseline indicates metrics were requested for a project that has
	// never been baselined.
	ErrNoBaseline = errors.New("project has no baseline")

	// ErrEmptySnapshot indicates a baseline was requested over a project
	// with no tasks to snapshot.
	ErrEmptySnapshot = errors.New("nothing to baseline")
)
