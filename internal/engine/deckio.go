package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/recall/internal/deck"
)

// maxDeckFileSize caps how much of a deck file ImportDeck will read.
const maxDeckFileSize = 10 * 1024 * 1024

// deckFile is the on-disk shape of an importable TOML deck: a list of
// [[cards]] tables with front, back, and optional tags.
type deckFile struct {
	Cards []deckCard `toml:"cards"`
}

type deckCard struct {
	Front string   `toml:"front"`
	Back  string   `toml:"back"`
	Tags  []string `toml:"tags"`
}

// exportFile is the JSON shape ExportDeck writes. Cards carry their full
// scheduling state so an export doubles as a backup.
type exportFile struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Cards      []*deck.Card `json:"cards"`
}

// ImportDeck reads a TOML deck file and adds every card in it to the
// collection, all immediately due. The import is all or nothing: one
// invalid card rejects the whole file and the collection is untouched.
// Returns the number of cards added.
func (e *Engine) ImportDeck(ctx context.Context, path string) (int, error) {
	ctx, span := e.tracer.Start(ctx, "engine.import_deck")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(fmt.Errorf("failed to open deck file: %w", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fail(fmt.Errorf("failed to stat deck file: %w", err))
	}
	if info.Size() > maxDeckFileSize {
		return fail(fmt.Errorf("%w: %d bytes, max %d", ErrDeckTooLarge, info.Size(), maxDeckFileSize))
	}

	var df deckFile
	if _, err := toml.NewDecoder(f).Decode(&df); err != nil {
		return fail(fmt.Errorf("%w: %s: %v", ErrInvalidDeck, path, err))
	}
	if len(df.Cards) == 0 {
		return fail(fmt.Errorf("%w: %s: no cards", ErrInvalidDeck, path))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		return fail(err)
	}

	now := e.now()
	cards := make([]*deck.Card, 0, len(df.Cards))
	for i, dc := range df.Cards {
		c, err := deck.New(dc.Front, dc.Back, dc.Tags, now)
		if err != nil {
			return fail(fmt.Errorf("%w: card %d: %v", ErrInvalidDeck, i+1, err))
		}
		cards = append(cards, c)
	}

	e.state.Cards = append(e.state.Cards, cards...)
	if err := e.save(ctx); err != nil {
		return fail(err)
	}

	e.logger.Info(ctx, "imported deck",
		zap.String("path", path),
		zap.Int("cards", len(cards)),
	)

	span.SetAttributes(attribute.Int("card_count", len(cards)))
	return len(cards), nil
}

// ExportDeck writes the whole collection's cards to a JSON file at path.
// Returns the number of cards written.
func (e *Engine) ExportDeck(ctx context.Context, path string) (int, error) {
	ctx, span := e.tracer.Start(ctx, "engine.export_deck")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureState(ctx); err != nil {
		return fail(err)
	}

	out := exportFile{
		ExportedAt: e.now().UTC(),
		Cards:      e.state.Cards,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fail(fmt.Errorf("failed to encode deck: %w", err))
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fail(fmt.Errorf("failed to write deck file: %w", err))
	}

	e.logger.Info(ctx, "exported deck",
		zap.String("path", path),
		zap.Int("cards", len(out.Cards)),
	)

	span.SetAttributes(attribute.Int("card_count", len(out.Cards)))
	return len(out.Cards), nil
}
