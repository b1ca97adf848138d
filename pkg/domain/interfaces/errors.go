package interfaces

import "errors"

// ErrNotFound is wrapped by repository implementations when a requested
// record does not exist, so callers can branch without knowing the backend.
var ErrNotFound = errors.New("record not found")
