package deck

import (
	"encoding"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortField names a card attribute the pipeline can order by.
type SortField int

const (
	SortCreated SortField = iota + 1
	SortNextReview
	SortLastReview
	SortEasiness
	SortInterval
	SortRepetitions
)

var sortFieldNames = [...]string{
	SortCreated:     "created",
	SortNextReview:  "next-review",
	SortLastReview:  "last-review",
	SortEasiness:    "easiness",
	SortInterval:    "interval",
	SortRepetitions: "repetitions",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = SortField(0)
	_ encoding.TextMarshaler   = SortField(0)
	_ encoding.TextUnmarshaler = (*SortField)(nil)
)

// String returns the field name used on the command line.
func (s SortField) String() string {
	if s.IsValid() {
		return sortFieldNames[s]
	}
	return fmt.Sprintf("SortField(%d)", int(s))
}

// IsValid reports whether s is a defined sort field.
func (s SortField) IsValid() bool {
	return s >= SortCreated && s <= SortRepetitions
}

// ParseSortField converts a field name to a SortField.
func ParseSortField(name string) (SortField, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range sortFieldNames {
		if i > 0 && candidate == n {
			return SortField(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSortField, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s SortField) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSortField, int(s))
	}
	return []byte(sortFieldNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SortField) UnmarshalText(text []byte) error {
	parsed, err := ParseSortField(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SortCards returns a new slice ordered by field. The sort is stable: cards
// that compare equal keep their original relative order, enforced with an
// explicit index tiebreak rather than trusting the sort implementation.
func SortCards(cards []*Card, field SortField, desc bool) ([]*Card, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSortField, int(field))
	}

	type tagged struct {
		card  *Card
		index int
	}
	ts := make([]tagged, len(cards))
	for i, c := range cards {
		ts[i] = tagged{card: c, index: i}
	}

	sort.Slice(ts, func(a, b int) bool {
		cmp := compareCards(ts[a].card, ts[b].card, field)
		if desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return ts[a].index < ts[b].index
	})

	out := make([]*Card, len(ts))
	for i, t := range ts {
		out[i] = t.card
	}
	return out, nil
}

// compareCards orders a before b (-1), equal (0), or after (1) on field.
// A nil LastReview sorts before any reviewed card.
func compareCards(a, b *Card, field SortField) int {
	switch field {
	case SortCreated:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	case SortNextReview:
		return compareTimes(a.NextReview, b.NextReview)
	case SortLastReview:
		switch {
		case a.LastReview == nil && b.LastReview == nil:
			return 0
		case a.LastReview == nil:
			return -1
		case b.LastReview == nil:
			return 1
		default:
			return compareTimes(*a.LastReview, *b.LastReview)
		}
	case SortEasiness:
		switch {
		case a.Easiness < b.Easiness:
			return -1
		case a.Easiness > b.Easiness:
			return 1
		}
		return 0
	case SortInterval:
		return compareInts(a.Interval, b.Interval)
	case SortRepetitions:
		return compareInts(a.Repetitions, b.Repetitions)
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
