package srs

import (
	"fmt"
	"math"
	"time"
)

// Defaults applied by NewScheduler for zero-valued config fields.
const (
	DefaultFailureRetryDelay = 10 * time.Minute
	DefaultMaxInterval       = 36500 // days, roughly a century
)

// Config tunes the Scheduler. Zero-value fields select the defaults.
type Config struct {
	// FailureRetryDelay is how soon a failed card comes back for another
	// attempt within the same sitting.
	FailureRetryDelay time.Duration

	// MaxInterval caps interval growth, in days.
	MaxInterval int
}

// Scheduler computes SM-2 state transitions. It is immutable after
// construction and safe for concurrent use.
type Scheduler struct {
	retryDelay  time.Duration
	maxInterval int
}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewScheduler(cfg Config) (*Scheduler, error) {
	delay := cfg.FailureRetryDelay
	if delay == 0 {
		delay = DefaultFailureRetryDelay
	}
	if delay < 0 {
		return nil, fmt.Errorf("%w: failure retry delay %s is negative", ErrInvalidConfig, delay)
	}

	maxIvl := cfg.MaxInterval
	if maxIvl == 0 {
		maxIvl = DefaultMaxInterval
	}
	if maxIvl < 1 {
		return nil, fmt.Errorf("%w: max interval %d days, must be at least 1", ErrInvalidConfig, maxIvl)
	}

	return &Scheduler{retryDelay: delay, maxInterval: maxIvl}, nil
}

// Review applies one graded recall to prev and returns the resulting state.
// The input state is not mutated. The SM-2 update, in order:
//
//	reps' = reps + 1 if q >= 3, else 0
//	e'    = clamp(e + 0.1 - (5-q)*(0.08 + (5-q)*0.02), 1.3, 3.0)
//	ivl'  = 1 if q < 3; else 1, 6, ceil(ivl * e') for reps' of 1, 2, 3+
//
// A successful review schedules the next one ivl' days out; a failure brings
// the card back after the configured retry delay so it can be retried within
// the same sitting.
func (s *Scheduler) Review(prev State, q Quality, now time.Time) (State, error) {
	if !q.IsValid() {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}

	next := prev
	if q.Successful() {
		next.Repetitions = prev.Repetitions + 1
	} else {
		next.Repetitions = 0
	}

	next.Easiness = nextEasiness(prev.Easiness, q)

	switch {
	case !q.Successful():
		next.Interval = 1
	case next.Repetitions == 1:
		next.Interval = 1
	case next.Repetitions == 2:
		next.Interval = 6
	default:
		next.Interval = int(math.Ceil(float64(prev.Interval) * next.Easiness))
	}
	if next.Interval < 1 {
		next.Interval = 1
	}
	if next.Interval > s.maxInterval {
		next.Interval = s.maxInterval
	}

	if q.Successful() {
		next.NextReview = now.AddDate(0, 0, next.Interval)
	} else {
		next.NextReview = now.Add(s.retryDelay)
	}

	reviewedAt := now
	next.LastReview = &reviewedAt
	return next, nil
}

// Preview returns the state each grade would produce, keyed by grade.
// Useful for showing "comes back in N days" hints next to grade buttons.
func (s *Scheduler) Preview(prev State, now time.Time) map[Quality]State {
	out := make(map[Quality]State, int(Perfect)+1)
	for q := Blackout; q <= Perfect; q++ {
		next, err := s.Review(prev, q, now)
		if err != nil {
			continue
		}
		out[q] = next
	}
	return out
}

// nextEasiness applies the SM-2 easiness delta for grade q and clamps the
// result to [MinEasiness, MaxEasiness].
func nextEasiness(e float64, q Quality) float64 {
	miss := float64(5 - int(q))
	e += 0.1 - miss*(0.08+miss*0.02)
	return math.Min(math.Max(e, MinEasiness), MaxEasiness)
}
