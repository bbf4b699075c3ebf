package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Issue is a single integrity finding from the doctor pass.
type Issue struct {
	// Subject identifies what the finding is about: a card id, a session
	// id, or a component name like "streak".
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Subject + ": " + i.Message
}

// Doctor runs a read-only integrity pass over the collection and reports
// everything that violates the persisted-state invariants. It never
// repairs; the findings tell the user what to fix or restore.
func (e *Engine) Doctor(ctx context.Context) ([]Issue, error) {
	ctx, span := e.tracer.Start(ctx, "engine.doctor")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var issues []Issue
	report := func(subject, format string, args ...any) {
		issues = append(issues, Issue{Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(e.state.Cards))
	for _, c := range e.state.Cards {
		if c.ID != "" && seen[c.ID] {
			report(c.ID, "duplicate card id")
		}
		seen[c.ID] = true

		if err := c.Validate(); err != nil {
			report(c.ID, "%v", err)
		}
		if c.LastReview != nil && c.NextReview.IsZero() {
			report(c.ID, "reviewed card has no next review date")
		}
		if c.LastReview != nil && c.NextReview.Before(*c.LastReview) && c.Interval >= 1 {
			report(c.ID, "next review %s predates last review %s",
				c.NextReview.Format(time.RFC3339), c.LastReview.Format(time.RFC3339))
		}
	}

	st := e.state.LearningStreak
	if st.CurrentStreak < 0 {
		report("streak", "negative current streak %d", st.CurrentStreak)
	}
	if st.LongestStreak < 0 {
		report("streak", "negative longest streak %d", st.LongestStreak)
	}
	if st.LongestStreak < st.CurrentStreak {
		report("streak", "longest streak %d below current streak %d", st.LongestStreak, st.CurrentStreak)
	}
	if st.LastStudyDate != "" {
		if _, err := time.Parse(time.DateOnly, st.LastStudyDate); err != nil {
			report("streak", "unparseable last study date %q", st.LastStudyDate)
		}
	}
	for i, d := range st.StudyDates {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			report("streak", "unparseable study date %q", d)
		}
		if i > 0 && st.StudyDates[i-1] >= d {
			report("streak", "study dates not sorted unique at %q", d)
		}
	}

	for _, r := range e.state.SessionHistory {
		if r.EndTime != nil && r.EndTime.Before(r.StartTime) {
			report(r.ID, "session ends before it starts")
		}
		if r.CardsStudied < 0 || r.CorrectAnswers < 0 || r.IncorrectAnswers < 0 {
			report(r.ID, "negative session counters")
		}
		if r.CorrectAnswers+r.IncorrectAnswers != r.CardsStudied {
			report(r.ID, "answer counts %d+%d do not add up to cards studied %d",
				r.CorrectAnswers, r.IncorrectAnswers, r.CardsStudied)
		}
	}

	for _, a := range e.state.Achievements {
		if a.Progress.Current < 0 || a.Progress.Required < 1 {
			report(a.ID, "invalid achievement progress %d/%d", a.Progress.Current, a.Progress.Required)
		}
	}

	if len(issues) > 0 {
		e.logger.Warn(ctx, "doctor found issues", zap.Int("count", len(issues)))
	}

	span.SetAttributes(attribute.Int("issue_count", len(issues)))
	return issues, nil
}
