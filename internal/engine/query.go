package engine

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/codes"

	"github.com/fyrsmithlabs/recall/internal/achievement"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/stats"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

// Stats aggregates collection-wide numbers as of now.
func (e *Engine) Stats(ctx context.Context) (stats.Snapshot, error) {
	ctx, span := e.tracer.Start(ctx, "engine.stats")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return stats.Snapshot{}, err
	}

	return stats.Collect(e.state.Cards, e.state.SessionHistory, e.state.LearningStreak, e.now()), nil
}

// TagDistribution counts cards per tag.
func (e *Engine) TagDistribution(ctx context.Context) ([]stats.TagCount, error) {
	ctx, span := e.tracer.Start(ctx, "engine.tag_distribution")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return stats.TagDistribution(e.state.Cards), nil
}

// WeeklyStats summarizes the last weeks of session history, oldest first.
func (e *Engine) WeeklyStats(ctx context.Context, weeks int) ([]stats.WeekStat, error) {
	ctx, span := e.tracer.Start(ctx, "engine.weekly_stats")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return stats.Weekly(e.state.SessionHistory, e.now(), weeks), nil
}

// DailyVolume returns cards studied per day over the last days, oldest
// first, for sparkline rendering.
func (e *Engine) DailyVolume(ctx context.Context, days int) ([]float64, error) {
	ctx, span := e.tracer.Start(ctx, "engine.daily_volume")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return stats.DailyVolume(e.state.SessionHistory, e.now(), days), nil
}

// Streak returns a copy of the learning streak state.
func (e *Engine) Streak(ctx context.Context) (streak.State, error) {
	ctx, span := e.tracer.Start(ctx, "engine.streak")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return streak.State{}, err
	}

	st := e.state.LearningStreak
	st.StudyDates = slices.Clone(st.StudyDates)
	return st, nil
}

// Achievements returns a copy of the achievement table.
func (e *Engine) Achievements(ctx context.Context) ([]achievement.Achievement, error) {
	ctx, span := e.tracer.Start(ctx, "engine.achievements")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return slices.Clone(e.state.Achievements), nil
}

// History returns a copy of the retained session records, oldest first.
func (e *Engine) History(ctx context.Context) ([]session.Record, error) {
	ctx, span := e.tracer.Start(ctx, "engine.history")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return slices.Clone(e.state.SessionHistory), nil
}
