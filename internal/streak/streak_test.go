package streak

import (
	"testing"
	"time"
)

// day returns noon UTC on 2025-06-<d>.
func day(d int) time.Time {
	return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
}

func TestUpdateWalk(t *testing.T) {
	var s State

	// Day 1: first ever session.
	s = Update(s, day(1), day(1))
	if s.CurrentStreak != 1 || s.LongestStreak != 1 {
		t.Fatalf("day 1: current %d longest %d, want 1 1", s.CurrentStreak, s.LongestStreak)
	}
	if s.LastStudyDate != "2025-06-01" {
		t.Fatalf("day 1: lastStudyDate = %q", s.LastStudyDate)
	}

	// Day 2: consecutive day extends the run.
	s = Update(s, day(2), day(2))
	if s.CurrentStreak != 2 || s.LongestStreak != 2 {
		t.Fatalf("day 2: current %d longest %d, want 2 2", s.CurrentStreak, s.LongestStreak)
	}

	// Day 4: the gap resets current but longest survives.
	s = Update(s, day(4), day(4))
	if s.CurrentStreak != 1 || s.LongestStreak != 2 {
		t.Fatalf("day 4: current %d longest %d, want 1 2", s.CurrentStreak, s.LongestStreak)
	}
	if len(s.StudyDates) != 3 {
		t.Fatalf("StudyDates = %v, want 3 entries", s.StudyDates)
	}
}

func TestUpdateSameDayTwice(t *testing.T) {
	var s State
	s = Update(s, day(1), day(1))
	s = Update(s, day(1).Add(5*time.Hour), day(1).Add(5*time.Hour))

	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", s.CurrentStreak)
	}
	if len(s.StudyDates) != 1 {
		t.Errorf("StudyDates = %v, want single entry", s.StudyDates)
	}
}

func TestUpdateMidnightBoundary(t *testing.T) {
	var s State
	s = Update(s, time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC), time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC))
	s = Update(s, time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC), time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC))

	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 across midnight", s.CurrentStreak)
	}
}

func TestUpdateBackfillLeavesCounters(t *testing.T) {
	var s State
	s = Update(s, day(10), day(10))
	s = Update(s, day(11), day(11))

	// A week-old session imported later: recorded, counters untouched.
	s = Update(s, day(3), day(11))

	if s.CurrentStreak != 2 || s.LongestStreak != 2 {
		t.Errorf("counters = %d/%d, want 2/2", s.CurrentStreak, s.LongestStreak)
	}
	if s.LastStudyDate != "2025-06-11" {
		t.Errorf("LastStudyDate = %q, want 2025-06-11", s.LastStudyDate)
	}
	want := []string{"2025-06-03", "2025-06-10", "2025-06-11"}
	if len(s.StudyDates) != len(want) {
		t.Fatalf("StudyDates = %v, want %v", s.StudyDates, want)
	}
	for i := range want {
		if s.StudyDates[i] != want[i] {
			t.Errorf("StudyDates[%d] = %q, want %q", i, s.StudyDates[i], want[i])
		}
	}
}

func TestUpdateYesterdayAfterToday(t *testing.T) {
	var s State
	s = Update(s, day(2), day(2))

	// An event for yesterday arriving after today's: counters stay put,
	// lastStudyDate does not move backward.
	s = Update(s, day(1), day(2))

	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", s.CurrentStreak)
	}
	if s.LastStudyDate != "2025-06-02" {
		t.Errorf("LastStudyDate = %q, want 2025-06-02", s.LastStudyDate)
	}
}

func TestUpdateYesterdayThenToday(t *testing.T) {
	var s State
	// Session finished late yesterday, recorded when the app opens today.
	s = Update(s, day(1), day(2))
	if s.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak = %d, want 1", s.CurrentStreak)
	}
	s = Update(s, day(2), day(2))
	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	orig := State{
		CurrentStreak: 1,
		LongestStreak: 3,
		LastStudyDate: "2025-06-01",
		StudyDates:    []string{"2025-06-01"},
	}
	_ = Update(orig, day(2), day(2))

	if len(orig.StudyDates) != 1 || orig.StudyDates[0] != "2025-06-01" {
		t.Errorf("input StudyDates mutated: %v", orig.StudyDates)
	}
	if orig.CurrentStreak != 1 || orig.LastStudyDate != "2025-06-01" {
		t.Errorf("input counters mutated: %+v", orig)
	}
}

func TestLongestNeverDecreases(t *testing.T) {
	var s State
	for d := 1; d <= 5; d++ {
		s = Update(s, day(d), day(d))
	}
	if s.LongestStreak != 5 {
		t.Fatalf("LongestStreak = %d, want 5", s.LongestStreak)
	}

	s = Update(s, day(20), day(20))
	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after gap", s.CurrentStreak)
	}
	if s.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5 preserved", s.LongestStreak)
	}
}

func TestStudiedOn(t *testing.T) {
	s := State{StudyDates: []string{"2025-06-01", "2025-06-03"}}

	if !s.StudiedOn(day(1)) {
		t.Error("StudiedOn(day 1) = false, want true")
	}
	if s.StudiedOn(day(2)) {
		t.Error("StudiedOn(day 2) = true, want false")
	}
}

func TestDaysBetweenDamagedDate(t *testing.T) {
	s := State{CurrentStreak: 4, LongestStreak: 4, LastStudyDate: "not-a-date"}
	s = Update(s, day(2), day(2))

	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want reset to 1 on damaged date", s.CurrentStreak)
	}
	if s.LastStudyDate != "2025-06-02" {
		t.Errorf("LastStudyDate = %q, want healed to 2025-06-02", s.LastStudyDate)
	}
}
