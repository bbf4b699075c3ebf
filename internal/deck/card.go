package deck

import (
	"fmt"
	"slices"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/fyrsmithlabs/recall/internal/srs"
)

// Content limits enforced on card creation and import.
const (
	MaxSideLength = 2000
	MaxTagLength  = 64
)

// Card is a single flashcard plus its scheduling state.
type Card struct {
	// ID is the stable card identifier (nanoid). Never reused.
	ID string `json:"id"`

	// Front is the prompt side, shown first during review.
	Front string `json:"front"`

	// Back is the answer side.
	Back string `json:"back"`

	// Tags are lowercase, deduplicated, sorted labels.
	Tags []string `json:"tags,omitempty"`

	// Easiness is the SM-2 easiness factor, within [1.3, 3.0].
	Easiness float64 `json:"easiness"`

	// Interval is the current gap to the next review in days.
	// Zero until the card's first review.
	Interval int `json:"interval"`

	// Repetitions counts consecutive successful reviews.
	Repetitions int `json:"repetitions"`

	// NextReview is when the card becomes due.
	NextReview time.Time `json:"nextReview"`

	// LastReview is when the card was last graded, nil for never.
	LastReview *time.Time `json:"lastReview,omitempty"`

	// CreatedAt is when the card was added to the collection.
	CreatedAt time.Time `json:"createdAt"`
}

// New creates a card that is due immediately. Front and back are trimmed
// and must be non-empty; tags are normalized (lowercased, deduplicated,
// sorted).
func New(front, back string, tags []string, now time.Time) (*Card, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, ErrEmptyFront
	}
	if back == "" {
		return nil, ErrEmptyBack
	}
	if len(front) > MaxSideLength {
		return nil, fmt.Errorf("%w: %d chars, max %d", ErrFrontTooLong, len(front), MaxSideLength)
	}
	if len(back) > MaxSideLength {
		return nil, fmt.Errorf("%w: %d chars, max %d", ErrBackTooLong, len(back), MaxSideLength)
	}
	normalized, err := NormalizeTags(tags)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate card id: %w", err)
	}

	st := srs.NewState(now)
	return &Card{
		ID:         id,
		Front:      front,
		Back:       back,
		Tags:       normalized,
		Easiness:   st.Easiness,
		NextReview: st.NextReview,
		CreatedAt:  now,
	}, nil
}

// NormalizeTags lowercases, trims, deduplicates, and sorts tags.
// Empty tags are dropped.
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if len(tag) > MaxTagLength {
			return nil, fmt.Errorf("%w: %q", ErrTagTooLong, tag[:MaxTagLength]+"...")
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Validate checks invariants on a card loaded from disk or an import file.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrMissingCardID
	}
	if strings.TrimSpace(c.Front) == "" {
		return ErrEmptyFront
	}
	if strings.TrimSpace(c.Back) == "" {
		return ErrEmptyBack
	}
	if c.Easiness < srs.MinEasiness || c.Easiness > srs.MaxEasiness {
		return fmt.Errorf("card %s: easiness %v out of [%v, %v]", c.ID, c.Easiness, srs.MinEasiness, srs.MaxEasiness)
	}
	if c.Interval < 0 {
		return fmt.Errorf("card %s: negative interval %d", c.ID, c.Interval)
	}
	if c.Repetitions < 0 {
		return fmt.Errorf("card %s: negative repetitions %d", c.ID, c.Repetitions)
	}
	return nil
}

// SchedulingState extracts the srs fields of the card.
func (c *Card) SchedulingState() srs.State {
	return srs.State{
		Easiness:    c.Easiness,
		Interval:    c.Interval,
		Repetitions: c.Repetitions,
		NextReview:  c.NextReview,
		LastReview:  c.LastReview,
	}
}

// ApplyScheduling writes a scheduling state back onto the card.
func (c *Card) ApplyScheduling(st srs.State) {
	c.Easiness = st.Easiness
	c.Interval = st.Interval
	c.Repetitions = st.Repetitions
	c.NextReview = st.NextReview
	c.LastReview = st.LastReview
}

// IsDue reports whether the card is due at ref.
func (c *Card) IsDue(ref time.Time) bool {
	return c.SchedulingState().IsDue(ref)
}

// Tier classifies the card by its current interval.
func (c *Card) Tier() srs.Tier {
	return srs.TierOf(c.Interval)
}

// HasTag reports whether the card carries the tag, case-insensitively.
func (c *Card) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return slices.Contains(c.Tags, tag)
}

// Matches reports whether the query appears in the front, back, or any tag,
// case-insensitively. An empty query matches every card.
func (c *Card) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Front), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Back), query) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	out := *c
	out.Tags = slices.Clone(c.Tags)
	if c.LastReview != nil {
		lr := *c.LastReview
		out.LastReview = &lr
	}
	return &out
}
