package srs

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Tier buckets a card by how established its memory is, derived from the
// current inter-review interval in days.
type Tier int

const (
	TierNew      Tier = iota + 1 // interval of a day or less
	TierLearning                 // 2-7 days
	TierYoung                    // 8-30 days
	TierMature                   // over 30 days
)

var tierNames = [...]string{
	TierNew:      "new",
	TierLearning: "learning",
	TierYoung:    "young",
	TierMature:   "mature",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Tier(0)
	_ json.Marshaler           = Tier(0)
	_ json.Unmarshaler         = (*Tier)(nil)
	_ encoding.TextMarshaler   = Tier(0)
	_ encoding.TextUnmarshaler = (*Tier)(nil)
)

// TierOf classifies an interval in days.
func TierOf(interval int) Tier {
	switch {
	case interval <= 1:
		return TierNew
	case interval <= 7:
		return TierLearning
	case interval <= 30:
		return TierYoung
	default:
		return TierMature
	}
}

// String returns the tier name ("new", "learning", "young", "mature").
// For invalid values it returns "Tier(n)".
func (t Tier) String() string {
	if t.IsValid() {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// IsValid reports whether t is a defined tier.
func (t Tier) IsValid() bool {
	return t >= TierNew && t <= TierMature
}

// ParseTier converts a tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if i > 0 && n == name {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTier, int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON encodes the tier as its quoted name.
func (t Tier) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a quoted tier name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTier, data)
	}
	return t.UnmarshalText([]byte(s))
}
