package srs

import "time"

// Easiness bounds and the starting value for new cards.
const (
	MinEasiness     = 1.3
	MaxEasiness     = 3.0
	DefaultEasiness = 2.5
)

// State carries the scheduling fields of a single card between reviews.
type State struct {
	// Easiness is the SM-2 easiness factor, always within
	// [MinEasiness, MaxEasiness].
	Easiness float64

	// Interval is the gap to the next review in whole days.
	// Zero until the card's first review, at least one after.
	Interval int

	// Repetitions counts consecutive successful reviews. Any failed
	// review resets it to zero.
	Repetitions int

	// NextReview is when the card becomes due again.
	NextReview time.Time

	// LastReview is when the card was last graded, nil for never.
	LastReview *time.Time
}

// NewState returns the state of a freshly added card: default easiness,
// no review history, due immediately.
func NewState(now time.Time) State {
	return State{Easiness: DefaultEasiness, NextReview: now}
}

// IsDue reports whether the card is due at ref. A card whose NextReview
// equals ref exactly is due.
func (s State) IsDue(ref time.Time) bool {
	return !s.NextReview.After(ref)
}

// Tier classifies the state by its current interval.
func (s State) Tier() Tier {
	return TierOf(s.Interval)
}
