package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

var t0 = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC) // a Wednesday

func card(t *testing.T, interval int, due bool, tags ...string) *deck.Card {
	t.Helper()
	c, err := deck.New("front", "back", tags, t0)
	require.NoError(t, err)
	c.Interval = interval
	if due {
		c.NextReview = t0.Add(-time.Hour)
	} else {
		c.NextReview = t0.Add(time.Hour)
	}
	return c
}

func TestCollect(t *testing.T) {
	cards := []*deck.Card{
		card(t, 0, true, "go"),     // new
		card(t, 5, false, "go"),    // learning
		card(t, 20, true),          // young
		card(t, 45, false, "math"), // mature
	}
	cards[1].Repetitions = 2
	cards[3].Repetitions = 7
	history := []session.Record{
		{CardsStudied: 10, CorrectAnswers: 8, IncorrectAnswers: 2},
		{CardsStudied: 5, CorrectAnswers: 5, QuitEarly: true},
	}
	st := streak.State{CurrentStreak: 3, LongestStreak: 9}

	snap := Collect(cards, history, st, t0)

	assert.Equal(t, 4, snap.TotalCards)
	assert.Equal(t, 2, snap.DueCards)
	assert.Equal(t, 1, snap.NewCards)
	assert.Equal(t, 1, snap.LearningCards)
	assert.Equal(t, 1, snap.YoungCards)
	assert.Equal(t, 1, snap.MatureCards)
	assert.InDelta(t, 2.5, snap.AverageEasiness, 1e-9)
	assert.Equal(t, 9, snap.TotalRepetitions)
	assert.Equal(t, 15, snap.TotalReviews)
	assert.Equal(t, 13, snap.CorrectReviews)
	assert.Equal(t, 2, snap.TotalSessions)
	assert.Equal(t, 1, snap.CompletedSessions)
	assert.Equal(t, 3, snap.CurrentStreak)
	assert.Equal(t, 9, snap.LongestStreak)
	assert.InDelta(t, 13.0/15.0, snap.Accuracy(), 1e-9)
}

func TestCollectEmpty(t *testing.T) {
	snap := Collect(nil, nil, streak.State{}, t0)

	assert.Zero(t, snap.TotalCards)
	assert.Zero(t, snap.AverageEasiness)
	assert.Zero(t, snap.Accuracy())
}

func TestTagDistribution(t *testing.T) {
	cards := []*deck.Card{
		card(t, 0, true, "go", "basics"),
		card(t, 0, true, "go"),
		card(t, 0, true, "math"),
	}

	got := TagDistribution(cards)

	require.Len(t, got, 3)
	assert.Equal(t, TagCount{Tag: "go", Count: 2}, got[0])
	// Equal counts order alphabetically.
	assert.Equal(t, TagCount{Tag: "basics", Count: 1}, got[1])
	assert.Equal(t, TagCount{Tag: "math", Count: 1}, got[2])
}

func TestWeekly(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	history := []session.Record{
		{StartTime: monday.Add(10 * time.Hour), CardsStudied: 6, CorrectAnswers: 5, IncorrectAnswers: 1},
		{StartTime: monday.AddDate(0, 0, -3), CardsStudied: 4, CorrectAnswers: 2, IncorrectAnswers: 2},
		{StartTime: monday.AddDate(0, 0, -30), CardsStudied: 9}, // outside the window
	}

	got := Weekly(history, t0, 4)

	require.Len(t, got, 4)
	assert.True(t, got[3].WeekStart.Equal(monday), "newest bucket starts this Monday")
	assert.Equal(t, 6, got[3].CardsStudied)
	assert.InDelta(t, 5.0/6.0, got[3].Accuracy(), 1e-9)
	assert.Equal(t, 4, got[2].CardsStudied, "previous week bucket")
	assert.Zero(t, got[0].Sessions)
	assert.Zero(t, got[1].Sessions)
}

func TestWeeklySundayLandsInMondayWeek(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	history := []session.Record{{StartTime: sunday, CardsStudied: 3}}

	got := Weekly(history, t0, 2)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].CardsStudied, "Sunday belongs to the week starting June 9")
	assert.Zero(t, got[1].CardsStudied)
}

func TestDailyVolume(t *testing.T) {
	history := []session.Record{
		{StartTime: t0, CardsStudied: 5},
		{StartTime: t0.AddDate(0, 0, -1), CardsStudied: 2},
		{StartTime: t0.AddDate(0, 0, -1).Add(time.Hour), CardsStudied: 1},
		{StartTime: t0.AddDate(0, 0, -10), CardsStudied: 8}, // outside
	}

	got := DailyVolume(history, t0, 7)

	require.Len(t, got, 7)
	assert.Equal(t, 5.0, got[6])
	assert.Equal(t, 3.0, got[5])
	assert.Equal(t, 0.0, got[0])
}
