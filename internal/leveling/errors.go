package leveling

import "errors"

var (
	// ErrUnresolvedConflict indicates auto leveling hit its horizon with
	// conflicts still open. Returned only in strict mode; the default path
	// reports unresolved conflicts as data.
	ErrUnresolvedConflict = errors.New("resource conflict could not be resolved within horizon")

	// ErrInvalidShift indicates a manual shift would violate a predecessor
	// constraint or target a task pinned by actual dates.
	ErrInvalidShift = errors.New("invalid task shift")

	// ErrUnknownTask indicates the shift target is not in the snapshot.
	ErrUnknownTask = errors.New("unknown task")
)
