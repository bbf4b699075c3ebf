package session

import (
	"time"

	"github.com/fyrsmithlabs/recall/internal/deck"
)

// MaxHistory caps retained session records; the oldest are trimmed first.
const MaxHistory = 100

// Record is the immutable summary of a finished session.
type Record struct {
	// ID is the unique session identifier (UUID).
	ID string `json:"id"`

	// Type names what drove the card selection.
	Type Type `json:"sessionType"`

	// StartTime is when the session began.
	StartTime time.Time `json:"startTime"`

	// EndTime is when the session ended.
	EndTime *time.Time `json:"endTime,omitempty"`

	// CardsStudied counts graded answers; skips do not count.
	CardsStudied int `json:"cardsStudied"`

	// CorrectAnswers counts grades of 3 and above.
	CorrectAnswers int `json:"correctAnswers"`

	// IncorrectAnswers counts grades below 3.
	IncorrectAnswers int `json:"incorrectAnswers"`

	// SkippedCards counts cards shown but not graded.
	SkippedCards int `json:"skippedCards,omitempty"`

	// AverageDifficulty is the mean of (5 - quality) over graded answers,
	// zero when nothing was graded. Higher means the sitting felt harder.
	AverageDifficulty float64 `json:"averageDifficulty"`

	// QuitEarly marks a session abandoned before its study set ran out.
	QuitEarly bool `json:"quitEarly"`

	// Filters snapshots the card selection of a custom session.
	Filters *deck.Filter `json:"filters,omitempty"`
}

// Accuracy returns the share of correct answers in [0, 1], zero when
// nothing was graded.
func (r Record) Accuracy() float64 {
	if r.CardsStudied == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.CardsStudied)
}

// Duration returns how long the session ran, zero if it never ended.
func (r Record) Duration() time.Duration {
	if r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// AppendHistory appends r and trims the oldest records beyond MaxHistory.
func AppendHistory(history []Record, r Record) []Record {
	history = append(history, r)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return history
}
