package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/recall/internal/srs"
)

func TestFilterZeroMatchesEverything(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsZero())

	c := mustCard(t, "front", "back")
	c.NextReview = t0.AddDate(0, 0, 30) // far from due
	assert.True(t, f.Match(c, t0))
}

func TestFilterPredicatesAND(t *testing.T) {
	c := mustCard(t, "What is a channel?", "A typed conduit for goroutine communication.", "go", "concurrency")
	c.Interval = 5 // learning tier
	c.NextReview = t0.Add(time.Hour)

	learning := srs.TierLearning
	mature := srs.TierMature

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"query and tag both hit", Filter{Query: "channel", Tags: []string{"go"}}, true},
		{"query hits but tag misses", Filter{Query: "channel", Tags: []string{"rust"}}, false},
		{"tag OR takes one hit", Filter{Tags: []string{"rust", "concurrency"}}, true},
		{"tier matches", Filter{Tier: &learning}, true},
		{"tier mismatch", Filter{Tier: &mature}, false},
		{"due only excludes future card", Filter{DueOnly: true}, false},
		{"all predicates together", Filter{Query: "conduit", Tags: []string{"go"}, Tier: &learning}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Match(c, t0))
		})
	}
}

func TestFilterDueBoundary(t *testing.T) {
	c := mustCard(t, "front", "back")
	c.NextReview = t0

	f := Filter{DueOnly: true}
	assert.True(t, f.Match(c, t0), "card due exactly now must match")
	assert.False(t, f.Match(c, t0.Add(-time.Second)))
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())

	bad := srs.Tier(99)
	assert.ErrorIs(t, Filter{Tier: &bad}.Validate(), srs.ErrInvalidTier)
}
