// Package session tracks a single study sitting from start to finish and
// produces the immutable Record that lands in session history.
//
// A Tracker is not safe for concurrent use; the engine serializes access
// to the one active session.
package session
