// Package store persists the whole application state as a single JSON
// blob. There are no partial updates: callers load the state, change it,
// and save it back, which keeps the file a plain read-modify-write
// document that survives crashes via an atomic tmp+rename.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fyrsmithlabs/recall/internal/achievement"
	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

// Errors for store operations.
var (
	ErrCorrupted = errors.New("state file corrupted")
	ErrNilState  = errors.New("cannot save nil state")
)

// BackupSuffix is appended to the previous blob on every save.
const BackupSuffix = ".bak"

// State is the persisted application state.
type State struct {
	Cards          []*deck.Card              `json:"cards"`
	SessionHistory []session.Record          `json:"sessionHistory"`
	LearningStreak streak.State              `json:"learningStreak"`
	Achievements   []achievement.Achievement `json:"achievements"`
}

// DefaultState returns a fresh state with an empty collection and the
// standard achievement table.
func DefaultState() *State {
	return &State{
		Cards:          []*deck.Card{},
		SessionHistory: []session.Record{},
		Achievements:   achievement.Defaults(),
	}
}

// FileStore reads and writes the state blob at a fixed path.
type FileStore struct {
	mu      sync.Mutex
	path    string
	backups bool
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithBackups controls whether a .bak copy of the previous blob is kept
// on every save. On by default.
func WithBackups(enabled bool) Option {
	return func(s *FileStore) { s.backups = enabled }
}

// NewFileStore creates a store at path, creating parent directories as
// needed. An empty path falls back to collection.json under the user's
// data directory.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "recall", "collection.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s := &FileStore{path: path, backups: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the blob location.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether a state blob is present on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the state blob. A missing file yields DefaultState; malformed
// JSON fails with ErrCorrupted. Collections absent from the file come back
// as empty, and the achievement list is reconciled with the table this
// build ships.
func (s *FileStore) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	// Normalize collections absent from the file.
	if st.Cards == nil {
		st.Cards = []*deck.Card{}
	}
	if st.SessionHistory == nil {
		st.SessionHistory = []session.Record{}
	}
	st.Achievements = achievement.Merge(st.Achievements)

	return &st, nil
}

// Save writes the state blob atomically: marshal, write a tmp file next to
// the target, then rename over it. With backups on, the previous blob is
// kept at path.bak. The in-memory state is never touched on failure.
func (s *FileStore) Save(ctx context.Context, st *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st == nil {
		return ErrNilState
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if s.backups {
		if _, err := os.Stat(s.path); err == nil {
			if err := os.Rename(s.path, s.path+BackupSuffix); err != nil {
				os.Remove(tmpPath)
				return fmt.Errorf("failed to keep backup: %w", err)
			}
		}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}
