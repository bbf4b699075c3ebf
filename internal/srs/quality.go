package srs

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quality grades a single recall attempt on the 0-5 SM-2 scale.
type Quality int

const (
	Blackout  Quality = iota // No recall at all.
	Incorrect                // Wrong, but the answer was recognized once shown.
	Familiar                 // Wrong, yet the answer felt within reach.
	Hard                     // Correct with serious effort.
	Hesitant                 // Correct after noticeable hesitation.
	Perfect                  // Instant, effortless recall.
)

var qualityNames = [...]string{
	Blackout:  "blackout",
	Incorrect: "incorrect",
	Familiar:  "familiar",
	Hard:      "hard",
	Hesitant:  "hesitant",
	Perfect:   "perfect",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Quality(0)
	_ json.Marshaler           = Quality(0)
	_ json.Unmarshaler         = (*Quality)(nil)
	_ encoding.TextMarshaler   = Quality(0)
	_ encoding.TextUnmarshaler = (*Quality)(nil)
)

// String returns the grade name ("blackout" through "perfect").
// For invalid values it returns "Quality(n)".
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// IsValid reports whether q is on the 0-5 scale.
func (q Quality) IsValid() bool {
	return q >= Blackout && q <= Perfect
}

// Successful reports whether q counts as a correct answer (Hard or better).
func (q Quality) Successful() bool {
	return q >= Hard
}

// ParseQuality accepts a digit ("4") or a grade name ("hesitant").
func ParseQuality(s string) (Quality, error) {
	if n, err := strconv.Atoi(s); err == nil {
		q := Quality(n)
		if !q.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuality, n)
		}
		return q, nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range qualityNames {
		if n == name {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// MarshalJSON encodes the grade as its 0-5 number.
func (q Quality) MarshalJSON() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return strconv.AppendInt(nil, int64(q), 10), nil
}

// UnmarshalJSON accepts either a 0-5 number or a quoted grade name.
func (q *Quality) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed := Quality(n)
		if !parsed.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidQuality, n)
		}
		*q = parsed
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuality, data)
	}
	return q.UnmarshalText([]byte(s))
}
