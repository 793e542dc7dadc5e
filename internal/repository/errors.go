package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist. Callers
// match it with errors.Is; the wrapping message names the entity.
var ErrNotFound = errors.New("not found")
