package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/logging"
	"github.com/fyrsmithlabs/recall/internal/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestEngine builds an engine over a real file store in a temp dir with
// a controllable clock. Advance time through the returned pointer.
func newTestEngine(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "collection.json"))
	require.NoError(t, err)

	e, err := New(nil, st, logging.NewNop())
	require.NoError(t, err)

	clock := new(time.Time)
	*clock = testNow
	e.now = func() time.Time { return *clock }
	return e, clock
}

func mustAddCard(t *testing.T, e *Engine, front, back string, tags ...string) *deck.Card {
	t.Helper()
	c, err := e.AddCard(context.Background(), front, back, tags)
	require.NoError(t, err)
	return c
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is required")
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "collection.json"))
	require.NoError(t, err)

	e, err := New(nil, st, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), e.config)
}

func TestAddCard_ImmediatelyDue(t *testing.T) {
	e, _ := newTestEngine(t)

	c := mustAddCard(t, e, "capital of France?", "Paris", "geo")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "capital of France?", c.Front)
	assert.Equal(t, "Paris", c.Back)
	assert.Equal(t, []string{"geo"}, c.Tags)
	assert.Equal(t, 2.5, c.Easiness)
	assert.Equal(t, 0, c.Interval)
	assert.Equal(t, 0, c.Repetitions)
	assert.True(t, c.NextReview.Equal(testNow))
	assert.True(t, c.CreatedAt.Equal(testNow))
	assert.Nil(t, c.LastReview)
	assert.True(t, c.IsDue(testNow))
}

func TestAddCard_NormalizesTags(t *testing.T) {
	e, _ := newTestEngine(t)

	c := mustAddCard(t, e, "front", "back", "Go ", "SYNTAX", "go")

	assert.Equal(t, []string{"go", "syntax"}, c.Tags)
}

func TestAddCard_RejectsEmptySides(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.AddCard(ctx, "  ", "back", nil)
	assert.ErrorIs(t, err, deck.ErrEmptyFront)

	_, err = e.AddCard(ctx, "front", "", nil)
	assert.ErrorIs(t, err, deck.ErrEmptyBack)
}

func TestAddCard_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	st, err := store.NewFileStore(path)
	require.NoError(t, err)

	e1, err := New(nil, st, logging.NewNop())
	require.NoError(t, err)
	e1.now = func() time.Time { return testNow }
	c := mustAddCard(t, e1, "front", "back")

	st2, err := store.NewFileStore(path)
	require.NoError(t, err)
	e2, err := New(nil, st2, logging.NewNop())
	require.NoError(t, err)

	got, err := e2.GetCard(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "front", got.Front)
	assert.True(t, got.NextReview.Equal(testNow))
}

func TestGetCard_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.GetCard(context.Background(), "nope")
	assert.ErrorIs(t, err, deck.ErrCardNotFound)
	assert.Contains(t, err.Error(), "nope")
}

func TestGetCard_ReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	c := mustAddCard(t, e, "front", "back", "go")

	got, err := e.GetCard(ctx, c.ID)
	require.NoError(t, err)
	got.Front = "mutated"
	got.Tags[0] = "mutated"

	again, err := e.GetCard(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "front", again.Front)
	assert.Equal(t, []string{"go"}, again.Tags)
}

func TestListCards_FilterByTag(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustAddCard(t, e, "a", "1", "go")
	mustAddCard(t, e, "b", "2", "rust")
	mustAddCard(t, e, "c", "3", "go", "concurrency")

	cards, err := e.ListCards(ctx, deck.Filter{Tags: []string{"go"}}, deck.Options{})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Front)
	assert.Equal(t, "c", cards[1].Front)
}

func TestListCards_SortCreatedDescWithLimit(t *testing.T) {
	e, clock := newTestEngine(t)
	ctx := context.Background()
	mustAddCard(t, e, "oldest", "1")
	*clock = clock.Add(time.Minute)
	mustAddCard(t, e, "middle", "2")
	*clock = clock.Add(time.Minute)
	mustAddCard(t, e, "newest", "3")

	limit := 2
	cards, err := e.ListCards(ctx, deck.Filter{}, deck.Options{
		SortBy:   deck.SortCreated,
		SortDesc: true,
		Limit:    &limit,
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "newest", cards[0].Front)
	assert.Equal(t, "middle", cards[1].Front)
}

func TestEditTags_AddAndRemove(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	c := mustAddCard(t, e, "front", "back", "go", "syntax")

	got, err := e.EditTags(ctx, c.ID, []string{"Basics", "go"}, []string{"syntax"})
	require.NoError(t, err)
	assert.Equal(t, []string{"basics", "go"}, got.Tags)

	again, err := e.GetCard(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"basics", "go"}, again.Tags)
}

func TestEditTags_RemoveAllLeavesNone(t *testing.T) {
	e, _ := newTestEngine(t)
	c := mustAddCard(t, e, "front", "back", "go")

	got, err := e.EditTags(context.Background(), c.ID, nil, []string{"go"})
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestEditTags_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.EditTags(context.Background(), "nope", []string{"go"}, nil)
	assert.ErrorIs(t, err, deck.ErrCardNotFound)
}

func TestDeleteCard_RemovesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	st, err := store.NewFileStore(path)
	require.NoError(t, err)
	e, err := New(nil, st, logging.NewNop())
	require.NoError(t, err)
	e.now = func() time.Time { return testNow }
	ctx := context.Background()

	keep := mustAddCard(t, e, "keep", "1")
	drop := mustAddCard(t, e, "drop", "2")

	require.NoError(t, e.DeleteCard(ctx, drop.ID))

	_, err = e.GetCard(ctx, drop.ID)
	assert.ErrorIs(t, err, deck.ErrCardNotFound)

	st2, err := store.NewFileStore(path)
	require.NoError(t, err)
	loaded, err := st2.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Cards, 1)
	assert.Equal(t, keep.ID, loaded.Cards[0].ID)
}

func TestDeleteCard_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.DeleteCard(context.Background(), "nope")
	assert.ErrorIs(t, err, deck.ErrCardNotFound)
}

func TestCollectionPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	st, err := store.NewFileStore(path)
	require.NoError(t, err)
	e, err := New(nil, st, logging.NewNop())
	require.NoError(t, err)

	assert.Equal(t, path, e.CollectionPath())
}

func TestEnsureState_PropagatesLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	require.NoError(t, writeFile(path, "{not json"))

	st, err := store.NewFileStore(path)
	require.NoError(t, err)
	e, err := New(nil, st, logging.NewNop())
	require.NoError(t, err)

	_, err = e.GetCard(context.Background(), "any")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrCorrupted))
}
