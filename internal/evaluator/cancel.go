package evaluator

import "sync/atomic"

// CancelToken is a node in the cooperative cancellation tree. Each
// concurrent scope owns one token; cancelling a token cancels that
// token and everything nested under it, but never its ancestors or
// siblings. Cancellation is advisory: every blocking primitive polls
// IsCancelled at bounded intervals (config.CancelPollInterval) rather
// than blocking indefinitely.
type CancelToken struct {
	flag   atomic.Bool
	parent *CancelToken
}

// NewRootToken creates a parentless token.
func NewRootToken() *CancelToken {
	return &CancelToken{}
}

// NewChildToken creates a token nested under parent.
func NewChildToken(parent *CancelToken) *CancelToken {
	return &CancelToken{parent: parent}
}

// Cancel sets only the local flag.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// IsCancelled reports whether this token or any ancestor is cancelled.
func (t *CancelToken) IsCancelled() bool {
	for n := t; n != nil; n = n.parent {
		if n.flag.Load() {
			return true
		}
	}
	return false
}

// Parent returns the parent token, or nil for a root.
func (t *CancelToken) Parent() *CancelToken {
	return t.parent
}
