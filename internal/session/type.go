package session

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Type names what drove the card selection for a session.
type Type int

const (
	TypeDue    Type = iota + 1 // cards that were due
	TypeCustom                 // user-supplied filters
	TypeNew                    // never-reviewed cards
	TypeReview                 // previously studied cards, due or not
)

var typeNames = [...]string{
	TypeDue:    "due",
	TypeCustom: "custom",
	TypeNew:    "new",
	TypeReview: "review",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Type(0)
	_ json.Marshaler           = Type(0)
	_ json.Unmarshaler         = (*Type)(nil)
	_ encoding.TextMarshaler   = Type(0)
	_ encoding.TextUnmarshaler = (*Type)(nil)
)

// String returns the type name ("due", "custom", "new", "review").
// For invalid values it returns "Type(n)".
func (t Type) String() string {
	if t.IsValid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsValid reports whether t is a defined session type.
func (t Type) IsValid() bool {
	return t >= TypeDue && t <= TypeReview
}

// ParseType converts a session type name to a Type.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if i > 0 && n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSessionType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSessionType, int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON encodes the type as its quoted name.
func (t Type) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a quoted type name.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSessionType, data)
	}
	return t.UnmarshalText([]byte(s))
}
