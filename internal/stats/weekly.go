package stats

import (
	"time"

	"github.com/fyrsmithlabs/recall/internal/session"
)

// WeekStat summarizes one calendar week of studying.
type WeekStat struct {
	// WeekStart is Monday 00:00 UTC of the week.
	WeekStart time.Time `json:"weekStart"`

	Sessions     int `json:"sessions"`
	CardsStudied int `json:"cardsStudied"`
	Correct      int `json:"correct"`
	Incorrect    int `json:"incorrect"`
}

// Accuracy returns the week's share of correct answers in [0, 1].
func (w WeekStat) Accuracy() float64 {
	if w.CardsStudied == 0 {
		return 0
	}
	return float64(w.Correct) / float64(w.CardsStudied)
}

// Weekly buckets history into the weeks calendar weeks ending at ref,
// oldest week first. Sessions are assigned by start time; anything outside
// the window is dropped.
func Weekly(history []session.Record, ref time.Time, weeks int) []WeekStat {
	if weeks < 1 {
		return nil
	}

	newest := weekStart(ref)
	out := make([]WeekStat, weeks)
	for i := range out {
		out[i].WeekStart = newest.AddDate(0, 0, -7*(weeks-1-i))
	}
	oldest := out[0].WeekStart

	for _, r := range history {
		ws := weekStart(r.StartTime)
		if ws.Before(oldest) || ws.After(newest) {
			continue
		}
		i := int(ws.Sub(oldest) / (7 * 24 * time.Hour))
		out[i].Sessions++
		out[i].CardsStudied += r.CardsStudied
		out[i].Correct += r.CorrectAnswers
		out[i].Incorrect += r.IncorrectAnswers
	}
	return out
}

// DailyVolume returns cards studied per day for the days days ending at
// ref, oldest first. Shaped for feeding a sparkline.
func DailyVolume(history []session.Record, ref time.Time, days int) []float64 {
	if days < 1 {
		return nil
	}

	out := make([]float64, days)
	today := dayStart(ref)
	oldest := today.AddDate(0, 0, -(days - 1))

	for _, r := range history {
		d := dayStart(r.StartTime)
		if d.Before(oldest) || d.After(today) {
			continue
		}
		i := int(d.Sub(oldest) / (24 * time.Hour))
		out[i] += float64(r.CardsStudied)
	}
	return out
}

// weekStart returns Monday 00:00 UTC of the week containing t.
func weekStart(t time.Time) time.Time {
	d := dayStart(t)
	monday := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -monday)
}

// dayStart returns 00:00 UTC of the day containing t.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
