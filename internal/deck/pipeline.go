package deck

import (
	"fmt"
	"math/rand"
	"time"
)

// Options shape the result set after filtering. The zero value keeps the
// filtered cards in their input order, unlimited.
type Options struct {
	// SortBy orders the filtered cards; zero keeps input order.
	SortBy SortField

	// SortDesc reverses the sort direction.
	SortDesc bool

	// Limit truncates the result to the first N cards. Nil means no
	// limit; zero keeps nothing; negative values are rejected.
	Limit *int

	// Shuffle randomizes the final order. Applied after the limit, so a
	// limited set is drawn deterministically and then shuffled.
	Shuffle bool
}

// Apply runs the selection pipeline: filter, then sort, then limit, then
// shuffle. The input slice is never reordered or truncated in place. The
// rng is only consulted when Shuffle is set; pass nil to let the pipeline
// seed one from the clock.
func Apply(cards []*Card, f Filter, opts Options, ref time.Time, rng *rand.Rand) ([]*Card, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if opts.Limit != nil && *opts.Limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLimit, *opts.Limit)
	}
	if opts.SortBy != 0 && !opts.SortBy.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSortField, int(opts.SortBy))
	}

	out := make([]*Card, 0, len(cards))
	for _, c := range cards {
		if f.Match(c, ref) {
			out = append(out, c)
		}
	}

	if opts.SortBy != 0 {
		sorted, err := SortCards(out, opts.SortBy, opts.SortDesc)
		if err != nil {
			return nil, err
		}
		out = sorted
	}

	if opts.Limit != nil && *opts.Limit < len(out) {
		out = out[:*opts.Limit]
	}

	if opts.Shuffle {
		out = Shuffle(out, rng)
	}
	return out, nil
}

// Shuffle returns a new slice with the cards in uniform random order; the
// input slice is left untouched. Fisher–Yates, walking from the last index
// down and swapping with a uniform pick in [0, i].
func Shuffle(cards []*Card, rng *rand.Rand) []*Card {
	out := make([]*Card, len(cards))
	copy(out, cards)
	if len(out) < 2 {
		return out
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i := len(out) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
