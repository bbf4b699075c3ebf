package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/recall/internal/achievement"
	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/srs"
	"github.com/fyrsmithlabs/recall/internal/stats"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

// StudySet builds the card list for a session of the given type. The
// filter narrows custom sessions; due/new/review sessions derive their own
// predicate and combine it with the caller's. Nil limit and shuffle fall
// back to the configured defaults; a limit of zero means unlimited.
func (e *Engine) StudySet(ctx context.Context, typ session.Type, f deck.Filter, limit *int, shuffle *bool) ([]*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.study_set")
	defer span.End()
	span.SetAttributes(attribute.String("session_type", typ.String()))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !typ.IsValid() {
		err := fmt.Errorf("%w: %d", session.ErrInvalidSessionType, int(typ))
		span.RecordError(err)
		return nil, err
	}
	if err := f.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	pool := e.state.Cards
	opts := deck.Options{}

	switch typ {
	case session.TypeDue:
		f.DueOnly = true
		opts.SortBy = deck.SortNextReview
	case session.TypeNew:
		tier := srs.TierNew
		f.Tier = &tier
		opts.SortBy = deck.SortCreated
	case session.TypeReview:
		// Previously studied cards only
		seen := make([]*deck.Card, 0, len(pool))
		for _, c := range pool {
			if c.Interval >= 1 {
				seen = append(seen, c)
			}
		}
		pool = seen
		opts.SortBy = deck.SortNextReview
	case session.TypeCustom:
		// Caller's filter as given, input order
	}

	n := e.config.DefaultLimit
	if limit != nil {
		n = *limit
	}
	if n < 0 {
		err := fmt.Errorf("%w: %d", deck.ErrNegativeLimit, n)
		span.RecordError(err)
		return nil, err
	}
	if n > 0 {
		opts.Limit = &n
	}

	opts.Shuffle = e.config.Shuffle
	if shuffle != nil {
		opts.Shuffle = *shuffle
	}

	cards, err := deck.Apply(pool, f, opts, e.now(), e.rng)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(cards)))
	return cloneCards(cards), nil
}

// StartSession opens the single active session. The filter snapshot is
// recorded on the final session record for custom sessions.
func (e *Engine) StartSession(ctx context.Context, typ session.Type, f *deck.Filter) (*session.Tracker, error) {
	ctx, span := e.tracer.Start(ctx, "engine.start_session")
	defer span.End()
	span.SetAttributes(attribute.String("session_type", typ.String()))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if e.tracker != nil && e.tracker.Status() == session.StatusActive {
		span.RecordError(ErrSessionActive)
		return nil, ErrSessionActive
	}

	t, err := session.Start(typ, f, e.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	e.tracker = t

	e.logger.Info(ctx, "started session",
		zap.String("session_id", t.ID()),
		zap.String("session_type", typ.String()),
	)

	span.SetAttributes(attribute.String("session_id", t.ID()))
	return t, nil
}

// SubmitReview grades one card inside the active session, reschedules it,
// and persists immediately so abandoning the session keeps the progress.
func (e *Engine) SubmitReview(ctx context.Context, cardID string, q srs.Quality) (*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.submit_review")
	defer span.End()
	span.SetAttributes(
		attribute.String("card_id", cardID),
		attribute.Int("quality", int(q)),
	)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if e.tracker == nil || e.tracker.Status() != session.StatusActive {
		span.RecordError(ErrNoActiveSession)
		return nil, ErrNoActiveSession
	}
	if !q.IsValid() {
		err := fmt.Errorf("%w: %d", srs.ErrInvalidQuality, int(q))
		span.RecordError(err)
		return nil, err
	}

	i, err := e.findCard(cardID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	card := e.state.Cards[i]

	next, err := e.sched.Review(card.SchedulingState(), q, e.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	card.ApplyScheduling(next)

	if err := e.tracker.RecordAnswer(q); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := e.save(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if e.reviewCounter != nil {
		e.reviewCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("quality", int(q)),
			attribute.Bool("success", q.Successful()),
		))
	}

	e.logger.Debug(ctx, "applied review",
		zap.String("card_id", card.ID),
		zap.Int("quality", int(q)),
		zap.Int("interval_days", card.Interval),
		zap.Float64("easiness", card.Easiness),
	)

	return card.Clone(), nil
}

// SkipCard counts a skip on the active session. The card is untouched and
// nothing is persisted; skips only exist in the final record.
func (e *Engine) SkipCard(ctx context.Context, cardID string) error {
	ctx, span := e.tracer.Start(ctx, "engine.skip_card")
	defer span.End()
	span.SetAttributes(attribute.String("card_id", cardID))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if e.tracker == nil || e.tracker.Status() != session.StatusActive {
		span.RecordError(ErrNoActiveSession)
		return ErrNoActiveSession
	}

	if _, err := e.findCard(cardID); err != nil {
		span.RecordError(err)
		return err
	}

	return e.tracker.Skip()
}

// EndSession closes the active session, appends its record, advances the
// streak, re-evaluates achievements, and persists. Newly unlocked
// achievements come back for the UI to announce.
func (e *Engine) EndSession(ctx context.Context, quitEarly bool) (*session.Record, []achievement.Achievement, error) {
	ctx, span := e.tracer.Start(ctx, "engine.end_session")
	defer span.End()
	span.SetAttributes(attribute.Bool("quit_early", quitEarly))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	if e.tracker == nil {
		span.RecordError(ErrNoActiveSession)
		return nil, nil, ErrNoActiveSession
	}

	now := e.now()
	rec, err := e.tracker.End(quitEarly, now)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}
	e.tracker = nil

	e.state.SessionHistory = session.AppendHistory(e.state.SessionHistory, rec)
	if n := e.config.HistoryCap; n > 0 && len(e.state.SessionHistory) > n {
		e.state.SessionHistory = e.state.SessionHistory[len(e.state.SessionHistory)-n:]
	}

	e.state.LearningStreak = streak.Update(e.state.LearningStreak, now, now)

	snap := stats.Collect(e.state.Cards, e.state.SessionHistory, e.state.LearningStreak, now)
	next, unlocked := achievement.Evaluate(e.state.Achievements, snap, &rec, now)
	e.state.Achievements = next

	if err := e.save(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	if e.sessionCounter != nil {
		e.sessionCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("session_type", rec.Type.String()),
			attribute.Bool("quit_early", quitEarly),
		))
	}
	if e.unlockCounter != nil && len(unlocked) > 0 {
		e.unlockCounter.Add(ctx, int64(len(unlocked)))
	}

	e.logger.Info(ctx, "recorded session",
		zap.String("session_id", rec.ID),
		zap.Int("cards_studied", rec.CardsStudied),
		zap.Int("correct", rec.CorrectAnswers),
		zap.Bool("quit_early", quitEarly),
		zap.Int("unlocked", len(unlocked)),
	)

	span.SetAttributes(
		attribute.Int("cards_studied", rec.CardsStudied),
		attribute.Int("unlocked", len(unlocked)),
	)
	return &rec, unlocked, nil
}

// PreviewCard returns the would-be scheduling state for every quality
// grade without touching the card.
func (e *Engine) PreviewCard(ctx context.Context, cardID string) (map[srs.Quality]srs.State, error) {
	ctx, span := e.tracer.Start(ctx, "engine.preview_card")
	defer span.End()
	span.SetAttributes(attribute.String("card_id", cardID))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	i, err := e.findCard(cardID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return e.sched.Preview(e.state.Cards[i].SchedulingState(), e.now()), nil
}
