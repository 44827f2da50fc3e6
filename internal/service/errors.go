// Package service implements the memo access service: one entry point for
// memo CRUD that routes between the guest store and the database depending on
// the caller's session.
package service

import "errors"

var (
	// ErrNotFound covers both a genuinely absent memo and one owned by
	// somebody else. Collapsing the two keeps record ids from leaking
	// across accounts.
	ErrNotFound = errors.New("memo not found")

	// ErrNoSession means the session's guest state is gone, e.g. evicted
	// after being idle for too long
	ErrNoSession = errors.New("session has no guest state")
)
