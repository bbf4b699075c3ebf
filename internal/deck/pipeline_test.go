package deck

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture returns four cards with distinct scheduling shapes, in insertion
// order: a (due, learning), b (due, new), c (not due, mature), d (due,
// learning, same easiness as a).
func fixture(t *testing.T) []*Card {
	t.Helper()

	a := mustCard(t, "alpha question", "alpha answer", "go")
	a.Interval = 5
	a.Easiness = 2.2
	a.NextReview = t0.Add(-time.Hour)

	b := mustCard(t, "bravo question", "bravo answer", "go", "basics")
	b.NextReview = t0

	c := mustCard(t, "charlie question", "charlie answer", "rust")
	c.Interval = 45
	c.Easiness = 2.9
	c.NextReview = t0.AddDate(0, 0, 12)

	d := mustCard(t, "delta question", "delta answer")
	d.Interval = 3
	d.Easiness = 2.2
	d.NextReview = t0.Add(-time.Minute)

	return []*Card{a, b, c, d}
}

func ids(cards []*Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	cards := fixture(t)

	got, err := Apply(cards, Filter{}, Options{}, t0, nil)
	require.NoError(t, err)

	assert.Equal(t, ids(cards), ids(got), "empty pipeline must preserve input order")
}

func TestApplyFilters(t *testing.T) {
	cards := fixture(t)

	got, err := Apply(cards, Filter{DueOnly: true}, Options{}, t0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{cards[0].ID, cards[1].ID, cards[3].ID}, ids(got))

	got, err = Apply(cards, Filter{Tags: []string{"basics"}}, Options{}, t0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{cards[1].ID}, ids(got))
}

func TestApplySortStable(t *testing.T) {
	cards := fixture(t)

	// a and d share easiness 2.2; their input order must survive the sort.
	got, err := Apply(cards, Filter{}, Options{SortBy: SortEasiness}, t0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{cards[0].ID, cards[3].ID, cards[1].ID, cards[2].ID}, ids(got))

	got, err = Apply(cards, Filter{}, Options{SortBy: SortEasiness, SortDesc: true}, t0, nil)
	require.NoError(t, err)
	// Descending flips the groups but keeps a before d.
	assert.Equal(t, []string{cards[2].ID, cards[1].ID, cards[0].ID, cards[3].ID}, ids(got))
}

func TestApplyLimit(t *testing.T) {
	cards := fixture(t)

	two := 2
	got, err := Apply(cards, Filter{}, Options{Limit: &two}, t0, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{cards[0].ID, cards[1].ID}, ids(got))

	zero := 0
	got, err = Apply(cards, Filter{}, Options{Limit: &zero}, t0, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	neg := -1
	_, err = Apply(cards, Filter{}, Options{Limit: &neg}, t0, nil)
	assert.ErrorIs(t, err, ErrNegativeLimit)
}

func TestApplyLimitBeforeShuffle(t *testing.T) {
	cards := fixture(t)

	// With the limit applied first, only the first two filtered cards can
	// appear, whatever the rng does.
	two := 2
	rng := rand.New(rand.NewSource(7))
	got, err := Apply(cards, Filter{}, Options{Limit: &two, Shuffle: true}, t0, rng)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{cards[0].ID, cards[1].ID}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cards := fixture(t)
	want := ids(cards)

	rng := rand.New(rand.NewSource(1))
	_, err := Apply(cards, Filter{}, Options{SortBy: SortInterval, SortDesc: true, Shuffle: true}, t0, rng)
	require.NoError(t, err)

	assert.Equal(t, want, ids(cards), "input slice order must be preserved")
}

func TestShuffleIsPermutation(t *testing.T) {
	cards := make([]*Card, 0, 10)
	for i := 0; i < 10; i++ {
		cards = append(cards, mustCard(t, "front", "back"))
	}

	rng := rand.New(rand.NewSource(42))
	got := Shuffle(cards, rng)

	assert.ElementsMatch(t, ids(cards), ids(got))
	assert.NotEqual(t, ids(cards), ids(got), "seed 42 must not produce the identity order")
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	cards := fixture(t)

	first := Shuffle(cards, rand.New(rand.NewSource(99)))
	second := Shuffle(cards, rand.New(rand.NewSource(99)))

	assert.Equal(t, ids(first), ids(second))
}

func TestShuffleSmallInputs(t *testing.T) {
	assert.Empty(t, Shuffle(nil, nil))

	one := []*Card{mustCard(t, "front", "back")}
	got := Shuffle(one, nil)
	assert.Equal(t, ids(one), ids(got))
}
