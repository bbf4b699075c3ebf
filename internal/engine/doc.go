// Package engine sequences every mutation of the recall collection.
//
// The Engine owns the loaded state blob and applies the whole-state
// read-modify-write discipline: each logical mutation (add card, review,
// record session) is followed by a save of the entire collection. The
// driving CLI is single threaded, so the engine needs sequencing, not
// fine-grained locking; one mutex serializes operations.
//
// Scheduling math lives in srs, card selection in deck, session counters
// in session. The engine wires them together, talks to the store, and is
// the only layer that logs and instruments.
package engine
