package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/srs"
)

// Status is the tracker's position in its lifecycle.
type Status int

const (
	StatusActive    Status = iota + 1 // accepting answers
	StatusCompleted                   // ended normally
	StatusAbandoned                   // ended early by the user
)

var statusNames = [...]string{
	StatusActive:    "active",
	StatusCompleted: "completed",
	StatusAbandoned: "abandoned",
}

func (s Status) String() string {
	if s >= StatusActive && s <= StatusAbandoned {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Tracker accumulates one session's counters between Start and End.
type Tracker struct {
	id            string
	typ           Type
	startTime     time.Time
	filters       *deck.Filter
	status        Status
	cardsStudied  int
	correct       int
	incorrect     int
	skipped       int
	difficultySum float64
}

// Start opens a new active session. The filter snapshot may be nil and is
// recorded as-is on the final Record.
func Start(typ Type, filters *deck.Filter, now time.Time) (*Tracker, error) {
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSessionType, int(typ))
	}
	return &Tracker{
		id:        uuid.New().String(),
		typ:       typ,
		startTime: now,
		filters:   filters,
		status:    StatusActive,
	}, nil
}

// ID returns the session identifier.
func (t *Tracker) ID() string { return t.id }

// Type returns the session type.
func (t *Tracker) Type() Type { return t.typ }

// Status returns the tracker's lifecycle position.
func (t *Tracker) Status() Status { return t.status }

// CardsStudied returns the number of graded answers so far.
func (t *Tracker) CardsStudied() int { return t.cardsStudied }

// Correct returns the number of successful answers so far.
func (t *Tracker) Correct() int { return t.correct }

// Incorrect returns the number of failed answers so far.
func (t *Tracker) Incorrect() int { return t.incorrect }

// Skipped returns the number of skipped cards so far.
func (t *Tracker) Skipped() int { return t.skipped }

// RecordAnswer counts one graded answer.
func (t *Tracker) RecordAnswer(q srs.Quality) error {
	if t.status != StatusActive {
		return ErrSessionEnded
	}
	if !q.IsValid() {
		return fmt.Errorf("%w: %d", srs.ErrInvalidQuality, int(q))
	}
	t.cardsStudied++
	if q.Successful() {
		t.correct++
	} else {
		t.incorrect++
	}
	t.difficultySum += float64(5 - int(q))
	return nil
}

// Skip counts a card that was shown but not graded. Skips never touch the
// studied/correct/incorrect counters.
func (t *Tracker) Skip() error {
	if t.status != StatusActive {
		return ErrSessionEnded
	}
	t.skipped++
	return nil
}

// End closes the session and freezes its Record. Ending twice fails with
// ErrSessionEnded; card mutations already applied stay applied regardless
// of quitEarly.
func (t *Tracker) End(quitEarly bool, now time.Time) (Record, error) {
	if t.status != StatusActive {
		return Record{}, ErrSessionEnded
	}
	if quitEarly {
		t.status = StatusAbandoned
	} else {
		t.status = StatusCompleted
	}

	var avg float64
	if t.cardsStudied > 0 {
		avg = t.difficultySum / float64(t.cardsStudied)
	}

	end := now
	return Record{
		ID:                t.id,
		Type:              t.typ,
		StartTime:         t.startTime,
		EndTime:           &end,
		CardsStudied:      t.cardsStudied,
		CorrectAnswers:    t.correct,
		IncorrectAnswers:  t.incorrect,
		SkippedCards:      t.skipped,
		AverageDifficulty: avg,
		QuitEarly:         quitEarly,
		Filters:           t.filters,
	}, nil
}
