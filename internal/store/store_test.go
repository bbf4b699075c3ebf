package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

var t0 = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "collection.json"), opts...)
	require.NoError(t, err)
	return s
}

func sampleState(t *testing.T) *State {
	t.Helper()
	c, err := deck.New("What is a slice?", "A view over an underlying array.", []string{"go"}, t0)
	require.NoError(t, err)

	st := DefaultState()
	st.Cards = append(st.Cards, c)
	st.SessionHistory = append(st.SessionHistory, session.Record{
		ID:             "s-1",
		Type:           session.TypeDue,
		StartTime:      t0,
		CardsStudied:   1,
		CorrectAnswers: 1,
	})
	st.LearningStreak = streak.State{
		CurrentStreak: 1,
		LongestStreak: 1,
		LastStudyDate: "2025-06-15",
		StudyDates:    []string{"2025-06-15"},
	}
	return st
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	st, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, st.Cards)
	assert.Empty(t, st.SessionHistory)
	assert.Zero(t, st.LearningStreak.CurrentStreak)
	assert.Len(t, st.Achievements, 13)
	assert.False(t, s.Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleState(t)

	require.NoError(t, s.Save(context.Background(), want))
	require.True(t, s.Exists())

	got, err := s.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Cards, 1)
	assert.Equal(t, want.Cards[0].ID, got.Cards[0].ID)
	assert.Equal(t, want.Cards[0].Front, got.Cards[0].Front)
	assert.Equal(t, want.Cards[0].Tags, got.Cards[0].Tags)
	assert.True(t, got.Cards[0].NextReview.Equal(want.Cards[0].NextReview))
	assert.True(t, got.Cards[0].CreatedAt.Equal(t0))

	require.Len(t, got.SessionHistory, 1)
	assert.Equal(t, "s-1", got.SessionHistory[0].ID)
	assert.Equal(t, session.TypeDue, got.SessionHistory[0].Type)

	assert.Equal(t, want.LearningStreak, got.LearningStreak)
	assert.Len(t, got.Achievements, 13)
}

func TestLoadCorruptedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0600))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestLoadNormalizesAbsentCollections(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{}"), 0600))

	st, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, st.Cards)
	assert.NotNil(t, st.SessionHistory)
	assert.Len(t, st.Achievements, 13, "achievement table is reconciled on load")
}

func TestSaveWritesBackup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleState(t)))
	_, err := os.Stat(s.Path() + BackupSuffix)
	assert.True(t, os.IsNotExist(err), "first save has nothing to back up")

	second := sampleState(t)
	second.LearningStreak.CurrentStreak = 2
	require.NoError(t, s.Save(ctx, second))

	_, err = os.Stat(s.Path() + BackupSuffix)
	assert.NoError(t, err, "re-save keeps the previous blob at .bak")

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LearningStreak.CurrentStreak)
}

func TestSaveWithoutBackups(t *testing.T) {
	s := newTestStore(t, WithBackups(false))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleState(t)))
	require.NoError(t, s.Save(ctx, sampleState(t)))

	_, err := os.Stat(s.Path() + BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveNilState(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Save(context.Background(), nil), ErrNilState)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), sampleState(t)))

	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRespectsContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, sampleState(t)))
	assert.False(t, s.Exists())
}

func TestFilePermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), sampleState(t)))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
