package achievement

import (
	"math"
	"time"

	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/stats"
)

// rule binds an achievement definition to its stat source. The source
// returns the current value and whether the stat is available in this
// evaluation; an unavailable stat leaves recorded progress untouched.
type rule struct {
	id          string
	name        string
	description string
	category    Category
	required    int
	source      func(stats.Snapshot, *session.Record) (int, bool)
}

func fromSnapshot(pick func(stats.Snapshot) int) func(stats.Snapshot, *session.Record) (int, bool) {
	return func(s stats.Snapshot, _ *session.Record) (int, bool) {
		return pick(s), true
	}
}

// sessionAccuracy is the latest session's correct share as a whole
// percentage. Sessions with nothing graded carry no signal.
func sessionAccuracy(_ stats.Snapshot, latest *session.Record) (int, bool) {
	if latest == nil || latest.CardsStudied == 0 {
		return 0, false
	}
	return int(math.Floor(latest.Accuracy() * 100)), true
}

var rules = []rule{
	{
		id:          "first_card",
		name:        "First Card",
		description: "Add your first card",
		category:    CategoryCards,
		required:    1,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalCards }),
	},
	{
		id:          "cards_10",
		name:        "Deck Builder",
		description: "Grow the collection to 10 cards",
		category:    CategoryCards,
		required:    10,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalCards }),
	},
	{
		id:          "card_collector",
		name:        "Card Collector",
		description: "Grow the collection to 50 cards",
		category:    CategoryCards,
		required:    50,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalCards }),
	},
	{
		id:          "cards_100",
		name:        "Librarian",
		description: "Grow the collection to 100 cards",
		category:    CategoryCards,
		required:    100,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalCards }),
	},
	{
		id:          "first_session",
		name:        "First Steps",
		description: "Finish your first study session",
		category:    CategorySessions,
		required:    1,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalSessions }),
	},
	{
		id:          "sessions_10",
		name:        "Regular",
		description: "Complete 10 sessions without quitting early",
		category:    CategorySessions,
		required:    10,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.CompletedSessions }),
	},
	{
		id:          "sessions_50",
		name:        "Devoted",
		description: "Complete 50 sessions without quitting early",
		category:    CategorySessions,
		required:    50,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.CompletedSessions }),
	},
	{
		id:          "reviews_100",
		name:        "Century",
		description: "Accumulate 100 successful repetitions across the deck",
		category:    CategorySessions,
		required:    100,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.TotalRepetitions }),
	},
	{
		id:          "streak_3",
		name:        "Warming Up",
		description: "Study 3 days in a row",
		category:    CategoryStreaks,
		required:    3,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.CurrentStreak }),
	},
	{
		id:          "streak_7",
		name:        "Week One",
		description: "Study 7 days in a row",
		category:    CategoryStreaks,
		required:    7,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.CurrentStreak }),
	},
	{
		id:          "streak_30",
		name:        "Habit Formed",
		description: "Study 30 days in a row",
		category:    CategoryStreaks,
		required:    30,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.CurrentStreak }),
	},
	{
		id:          "accuracy_90",
		name:        "Sharp",
		description: "Score 90% accuracy in a session",
		category:    CategoryMastery,
		required:    90,
		source:      sessionAccuracy,
	},
	{
		id:          "mature_10",
		name:        "Long Game",
		description: "Bring 10 cards to the mature tier",
		category:    CategoryMastery,
		required:    10,
		source:      fromSnapshot(func(s stats.Snapshot) int { return s.MatureCards }),
	},
}

var rulesByID = func() map[string]rule {
	m := make(map[string]rule, len(rules))
	for _, r := range rules {
		m[r.id] = r
	}
	return m
}()

// Defaults returns the standard achievement table, all locked.
func Defaults() []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Category:    r.category,
			Progress:    Progress{Required: r.required},
		}
	}
	return out
}

// Merge overlays persisted achievement state onto the default table. The
// defaults provide order, names, and thresholds; persisted entries
// contribute their progress and unlock stamps. Persisted achievements this
// build does not know are appended at the end so an older binary never
// drops a newer one's unlocks.
func Merge(persisted []Achievement) []Achievement {
	byID := make(map[string]Achievement, len(persisted))
	for _, a := range persisted {
		byID[a.ID] = a
	}

	out := Defaults()
	for i := range out {
		saved, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		out[i].Progress.Current = saved.Progress.Current
		out[i].UnlockedAt = saved.UnlockedAt
		delete(byID, out[i].ID)
	}
	for _, a := range persisted {
		if _, leftover := byID[a.ID]; leftover {
			out = append(out, a)
		}
	}
	return out
}

// Evaluate recomputes progress for every locked achievement and unlocks
// those whose threshold is met, stamping them with now. Unlocked entries
// pass through frozen. The input slice is not modified; the second return
// lists the newly unlocked achievements.
//
// Achievements with an id no rule knows (say, written by a newer build)
// pass through untouched.
func Evaluate(achs []Achievement, snap stats.Snapshot, latest *session.Record, now time.Time) ([]Achievement, []Achievement) {
	out := make([]Achievement, len(achs))
	var unlocked []Achievement

	for i, a := range achs {
		if a.Unlocked() {
			out[i] = a
			continue
		}
		r, ok := rulesByID[a.ID]
		if !ok {
			out[i] = a
			continue
		}

		current, ok := r.source(snap, latest)
		if ok {
			a.Progress.Current = current
		}
		if a.Progress.Current >= r.required {
			at := now
			a.UnlockedAt = &at
			unlocked = append(unlocked, a)
		}
		out[i] = a
	}
	return out, unlocked
}
