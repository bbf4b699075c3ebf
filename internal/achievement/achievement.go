package achievement

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCategory is returned for unknown category names.
var ErrInvalidCategory = errors.New("invalid achievement category")

// Category groups achievements for display.
type Category int

const (
	CategoryCards    Category = iota + 1 // collection size milestones
	CategorySessions                     // session count milestones
	CategoryStreaks                      // daily streak milestones
	CategoryMastery                      // recall quality milestones
)

var categoryNames = [...]string{
	CategoryCards:    "cards",
	CategorySessions: "sessions",
	CategoryStreaks:  "streaks",
	CategoryMastery:  "mastery",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Category(0)
	_ json.Marshaler           = Category(0)
	_ json.Unmarshaler         = (*Category)(nil)
	_ encoding.TextMarshaler   = Category(0)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// String returns the category name.
func (c Category) String() string {
	if c.IsValid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// IsValid reports whether c is a defined category.
func (c Category) IsValid() bool {
	return c >= CategoryCards && c <= CategoryMastery
}

// ParseCategory converts a category name to a Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if i > 0 && n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes the category as its quoted name.
func (c Category) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a quoted category name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, data)
	}
	return c.UnmarshalText([]byte(s))
}

// Progress tracks how far along a locked achievement is.
type Progress struct {
	Current  int `json:"current"`
	Required int `json:"required"`
}

// Achievement is one unlockable milestone.
type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Progress    Progress `json:"progress"`

	// UnlockedAt is set exactly once, at unlock, and never cleared.
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// Percent returns display progress in [0, 100].
func (a Achievement) Percent() float64 {
	if a.Unlocked() || a.Progress.Required <= 0 {
		return 100
	}
	p := float64(a.Progress.Current) / float64(a.Progress.Required) * 100
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
