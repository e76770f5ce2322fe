package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested record or file does not exist.
	// For point lookups this is a normal outcome, not a failure; callers
	// branch on it with errors.Is.
	ErrNotFound = errors.New("record not found")
)
