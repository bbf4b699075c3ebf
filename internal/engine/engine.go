package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/logging"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/srs"
	"github.com/fyrsmithlabs/recall/internal/store"
)

const instrumentationName = "github.com/fyrsmithlabs/recall/internal/engine"

// Store is the persistence surface the engine needs.
type Store interface {
	Load(ctx context.Context) (*store.State, error)
	Save(ctx context.Context, st *store.State) error
	Path() string
}

// Config configures the engine.
type Config struct {
	// FailureRetryDelay is how soon a failed card comes back.
	FailureRetryDelay time.Duration

	// MaxIntervalDays caps interval growth.
	MaxIntervalDays int

	// HistoryCap limits retained session records. Values above the
	// persisted-state cap of 100 are clamped to it.
	HistoryCap int

	// DefaultLimit is the study set size when the caller passes no limit.
	// Zero or negative means unlimited.
	DefaultLimit int

	// Shuffle randomizes study sets when the caller does not say.
	Shuffle bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FailureRetryDelay: srs.DefaultFailureRetryDelay,
		MaxIntervalDays:   srs.DefaultMaxInterval,
		HistoryCap:        session.MaxHistory,
		DefaultLimit:      20,
		Shuffle:           true,
	}
}

// Engine applies and persists collection mutations.
type Engine struct {
	config *Config
	store  Store
	sched  *srs.Scheduler
	logger *logging.Logger

	// Telemetry
	tracer         trace.Tracer
	meter          metric.Meter
	reviewCounter  metric.Int64Counter
	sessionCounter metric.Int64Counter
	unlockCounter  metric.Int64Counter

	now func() time.Time
	rng *rand.Rand

	mu      sync.Mutex
	state   *store.State
	tracker *session.Tracker
}

// New creates an engine over the given store.
func New(cfg *Config, st Store, logger *logging.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if st == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	sched, err := srs.NewScheduler(srs.Config{
		FailureRetryDelay: cfg.FailureRetryDelay,
		MaxInterval:       cfg.MaxIntervalDays,
	})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config: cfg,
		store:  st,
		sched:  sched,
		logger: logger.Named("engine"),
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
		now:    time.Now,
	}

	e.initMetrics()

	return e, nil
}

// initMetrics initializes OpenTelemetry metrics.
func (e *Engine) initMetrics() {
	ctx := context.Background()
	var err error

	e.reviewCounter, err = e.meter.Int64Counter(
		"recall.engine.reviews_total",
		metric.WithDescription("Total number of card reviews applied"),
		metric.WithUnit("{review}"),
	)
	if err != nil {
		e.logger.Warn(ctx, "failed to create review counter", zap.Error(err))
	}

	e.sessionCounter, err = e.meter.Int64Counter(
		"recall.engine.sessions_total",
		metric.WithDescription("Total number of study sessions recorded"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		e.logger.Warn(ctx, "failed to create session counter", zap.Error(err))
	}

	e.unlockCounter, err = e.meter.Int64Counter(
		"recall.engine.achievements_unlocked_total",
		metric.WithDescription("Total number of achievements unlocked"),
		metric.WithUnit("{achievement}"),
	)
	if err != nil {
		e.logger.Warn(ctx, "failed to create unlock counter", zap.Error(err))
	}
}

// CollectionPath returns the path of the backing collection file.
func (e *Engine) CollectionPath() string {
	return e.store.Path()
}

// ensureState lazily loads the collection. Callers must hold e.mu.
func (e *Engine) ensureState(ctx context.Context) error {
	if e.state != nil {
		return nil
	}
	st, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	e.state = st
	return nil
}

// save persists the current state. Failures keep the in-memory state so
// the caller can retry or exit loudly. Callers must hold e.mu.
func (e *Engine) save(ctx context.Context) error {
	if err := e.store.Save(ctx, e.state); err != nil {
		e.logger.Error(ctx, "failed to save collection", zap.Error(err))
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// findCard returns the index of the card with the given id.
func (e *Engine) findCard(id string) (int, error) {
	for i, c := range e.state.Cards {
		if c.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", deck.ErrCardNotFound, id)
}

func cloneCards(cards []*deck.Card) []*deck.Card {
	out := make([]*deck.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// AddCard validates and stores a new card, immediately due.
func (e *Engine) AddCard(ctx context.Context, front, back string, tags []string) (*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.add_card")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	card, err := deck.New(front, back, tags, e.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	e.state.Cards = append(e.state.Cards, card)
	if err := e.save(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	e.logger.Info(ctx, "added card",
		zap.String("id", card.ID),
		zap.Strings("tags", card.Tags),
	)

	span.SetAttributes(attribute.String("card_id", card.ID))
	return card.Clone(), nil
}

// GetCard returns a copy of the card with the given id.
func (e *Engine) GetCard(ctx context.Context, id string) (*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.get_card")
	defer span.End()
	span.SetAttributes(attribute.String("card_id", id))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	i, err := e.findCard(id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return e.state.Cards[i].Clone(), nil
}

// ListCards runs the selection pipeline over the collection and returns
// copies of the matching cards.
func (e *Engine) ListCards(ctx context.Context, f deck.Filter, opts deck.Options) ([]*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.list_cards")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := f.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	cards, err := deck.Apply(e.state.Cards, f, opts, e.now(), e.rng)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(cards)))
	return cloneCards(cards), nil
}

// EditTags adds and removes tags on a card. Adds apply before removes and
// both lists are normalized the way card creation normalizes tags.
func (e *Engine) EditTags(ctx context.Context, id string, add, remove []string) (*deck.Card, error) {
	ctx, span := e.tracer.Start(ctx, "engine.edit_tags")
	defer span.End()
	span.SetAttributes(attribute.String("card_id", id))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	i, err := e.findCard(id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	addNorm, err := deck.NormalizeTags(add)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	removeNorm, err := deck.NormalizeTags(remove)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	card := e.state.Cards[i]
	merged := append(append([]string{}, card.Tags...), addNorm...)
	merged, err = deck.NormalizeTags(merged)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	removeSet := make(map[string]bool, len(removeNorm))
	for _, tag := range removeNorm {
		removeSet[tag] = true
	}
	tags := merged[:0]
	for _, tag := range merged {
		if !removeSet[tag] {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	card.Tags = tags

	if err := e.save(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	e.logger.Info(ctx, "edited tags",
		zap.String("id", card.ID),
		zap.Strings("tags", card.Tags),
	)

	return card.Clone(), nil
}

// DeleteCard removes a card from the collection.
func (e *Engine) DeleteCard(ctx context.Context, id string) error {
	ctx, span := e.tracer.Start(ctx, "engine.delete_card")
	defer span.End()
	span.SetAttributes(attribute.String("card_id", id))

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	i, err := e.findCard(id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	e.state.Cards = append(e.state.Cards[:i], e.state.Cards[i+1:]...)
	if err := e.save(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	e.logger.Info(ctx, "deleted card", zap.String("id", id))
	return nil
}
