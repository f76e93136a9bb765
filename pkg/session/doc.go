// Package session persists the authenticated session across restarts.
//
// Store is the injectable persistence port: a three-method key-value
// interface with a file-backed implementation for real use and an in-memory
// one for tests. Repository layers session semantics on top: the normalized
// user record, the tokens and the pending provider marker, stored under
// stable semantic keys.
//
// Corrupt persisted data is always recovered locally by discarding it; a
// damaged session file can never crash the host application.
package session
