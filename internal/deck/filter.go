package deck

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/recall/internal/srs"
)

// Filter selects cards from the collection. The zero value matches every
// card. Predicate kinds combine with AND; multiple tags combine with OR.
type Filter struct {
	// Query is a case-insensitive substring matched against front, back,
	// and tags. Empty matches all.
	Query string `json:"query,omitempty"`

	// Tags keeps cards carrying at least one of these tags.
	Tags []string `json:"tags,omitempty"`

	// Tier keeps cards in the given difficulty tier.
	Tier *srs.Tier `json:"tier,omitempty"`

	// DueOnly keeps cards due at the reference time.
	DueOnly bool `json:"dueOnly,omitempty"`
}

// IsZero reports whether the filter has no active predicates.
func (f Filter) IsZero() bool {
	return f.Query == "" && len(f.Tags) == 0 && f.Tier == nil && !f.DueOnly
}

// Validate checks the filter's shape.
func (f Filter) Validate() error {
	if f.Tier != nil && !f.Tier.IsValid() {
		return fmt.Errorf("%w: %d", srs.ErrInvalidTier, int(*f.Tier))
	}
	for _, tag := range f.Tags {
		if len(tag) > MaxTagLength {
			return fmt.Errorf("%w: %q", ErrTagTooLong, tag[:MaxTagLength]+"...")
		}
	}
	return nil
}

// Match reports whether the card passes every active predicate at ref.
func (f Filter) Match(c *Card, ref time.Time) bool {
	if f.Query != "" && !c.Matches(f.Query) {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, tag := range f.Tags {
			if c.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if f.Tier != nil && c.Tier() != *f.Tier {
		return false
	}
	if f.DueOnly && !c.IsDue(ref) {
		return false
	}
	return true
}
