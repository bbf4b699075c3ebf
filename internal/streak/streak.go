// Package streak maintains the daily learning streak: consecutive days
// with at least one finished study session.
//
// All calendar math happens on UTC date-only strings (YYYY-MM-DD), so a
// session at 23:59 and one at 00:01 the next day count as two days.
package streak

import (
	"slices"
	"time"
)

// State is the persisted streak record.
type State struct {
	// CurrentStreak is the length of the run ending at LastStudyDate.
	CurrentStreak int `json:"currentStreak"`

	// LongestStreak is the best run ever seen. Never decreases.
	LongestStreak int `json:"longestStreak"`

	// LastStudyDate is the most recent study day, empty for never.
	LastStudyDate string `json:"lastStudyDate,omitempty"`

	// StudyDates lists every study day, sorted and unique.
	StudyDates []string `json:"studyDates,omitempty"`
}

// Day returns the UTC date-only string for t.
func Day(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// StudiedOn reports whether the day containing t is a recorded study day.
func (s State) StudiedOn(t time.Time) bool {
	_, found := slices.BinarySearch(s.StudyDates, Day(t))
	return found
}

// Update folds one study event into s and returns the new state; s itself
// is not modified.
//
// The study day is always recorded in StudyDates. The counters only move
// when the day is today or yesterday relative to now: a same-day repeat
// changes nothing, a one-day step extends the streak, a longer gap starts
// over at one. Older days are backfill and leave the counters alone.
func Update(s State, studiedAt, now time.Time) State {
	date := Day(studiedAt)
	out := s
	out.StudyDates = insertDay(s.StudyDates, date)

	today := Day(now)
	yesterday := Day(now.AddDate(0, 0, -1))
	if date != today && date != yesterday {
		return out
	}

	gap := 2 // no prior study behaves like a long gap
	if out.LastStudyDate != "" {
		gap = daysBetween(out.LastStudyDate, date)
	}
	switch {
	case gap <= 0:
		// Same day, or an event behind the newest recorded day.
	case gap == 1:
		out.CurrentStreak++
	default:
		out.CurrentStreak = 1
	}

	// A positive gap means date is ahead of the stored day (or the stored
	// day was unusable), so it becomes the new anchor.
	if gap >= 1 {
		out.LastStudyDate = date
	}
	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}
	return out
}

// insertDay returns dates with date included, keeping the slice sorted and
// unique. The input slice is never written to.
func insertDay(dates []string, date string) []string {
	i, found := slices.BinarySearch(dates, date)
	if found {
		return dates
	}
	return slices.Insert(slices.Clone(dates), i, date)
}

// daysBetween returns b minus a in whole days. Unparseable input counts as
// a huge gap so a damaged date resets the streak instead of freezing it.
func daysBetween(a, b string) int {
	ta, err := time.Parse(time.DateOnly, a)
	if err != nil {
		return 1 << 30
	}
	tb, err := time.Parse(time.DateOnly, b)
	if err != nil {
		return 1 << 30
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}
