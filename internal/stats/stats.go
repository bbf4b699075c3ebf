// Package stats derives read-only aggregates from the collection, the
// session history, and the streak state. Nothing here mutates anything;
// the achievement evaluator and the stats screens both feed on it.
package stats

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/srs"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

// Snapshot aggregates collection-wide numbers at a point in time.
type Snapshot struct {
	TotalCards int `json:"totalCards"`
	DueCards   int `json:"dueCards"`

	// Tier counts, by current interval.
	NewCards      int `json:"newCards"`
	LearningCards int `json:"learningCards"`
	YoungCards    int `json:"youngCards"`
	MatureCards   int `json:"matureCards"`

	// AverageEasiness across all cards, zero for an empty collection.
	AverageEasiness float64 `json:"averageEasiness"`

	// TotalRepetitions sums every card's consecutive-success counter.
	TotalRepetitions int `json:"totalRepetitions"`

	// Review totals over the retained session history.
	TotalReviews   int `json:"totalReviews"`
	CorrectReviews int `json:"correctReviews"`

	TotalSessions     int `json:"totalSessions"`
	CompletedSessions int `json:"completedSessions"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Accuracy returns the overall share of correct reviews in [0, 1].
func (s Snapshot) Accuracy() float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.CorrectReviews) / float64(s.TotalReviews)
}

// Collect builds a Snapshot at ref.
func Collect(cards []*deck.Card, history []session.Record, st streak.State, ref time.Time) Snapshot {
	snap := Snapshot{
		TotalCards:    len(cards),
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
	}

	var easinessSum float64
	for _, c := range cards {
		easinessSum += c.Easiness
		snap.TotalRepetitions += c.Repetitions
		if c.IsDue(ref) {
			snap.DueCards++
		}
		switch c.Tier() {
		case srs.TierNew:
			snap.NewCards++
		case srs.TierLearning:
			snap.LearningCards++
		case srs.TierYoung:
			snap.YoungCards++
		case srs.TierMature:
			snap.MatureCards++
		}
	}
	if len(cards) > 0 {
		snap.AverageEasiness = easinessSum / float64(len(cards))
	}

	for _, r := range history {
		snap.TotalSessions++
		if !r.QuitEarly {
			snap.CompletedSessions++
		}
		snap.TotalReviews += r.CardsStudied
		snap.CorrectReviews += r.CorrectAnswers
	}
	return snap
}

// TagCount pairs a tag with the number of cards carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagDistribution counts cards per tag, ordered by count descending and
// tag ascending for equal counts.
func TagDistribution(cards []*deck.Card) []TagCount {
	counts := make(map[string]int)
	for _, c := range cards {
		for _, tag := range c.Tags {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Tag < out[b].Tag
	})
	return out
}
