package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/npratt/iqfit/internal/session"
)

// CurrentProfileVersion is the profile file format version.
// Files with a different version are backed up and replaced.
const CurrentProfileVersion = 1

// profile is the on-disk shape of the profile file.
type profile struct {
	Version   int                 `toml:"version"`
	User      string              `toml:"user,omitempty"`
	UpdatedAt time.Time           `toml:"updated_at"`
	Counters  Counters            `toml:"counters"`
	Favorites map[string][]string `toml:"favorites,omitempty"`
}

// FileStore persists counters and favorites to a TOML profile file.
// Every mutation rewrites the file atomically.
type FileStore struct {
	path string
	user string

	mu    *sync.Mutex
	state *profile
}

var (
	lockRegistryMu sync.Mutex
	pathLocks      = map[string]*sync.Mutex{}
)

// lockForPath returns the process-wide lock for a profile path so that two
// stores opened on the same file serialize their writes.
func lockForPath(path string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLocks[path]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	pathLocks[path] = mu
	return mu
}

var _ Profile = (*FileStore)(nil)

// NewFileStore returns a store backed by path. The file is re-read on every
// call; a missing file is an empty profile.
func NewFileStore(path, user string) *FileStore {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileStore{path: path, user: user, mu: lockForPath(path)}
}

// Path returns the profile file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the persisted counters.
func (f *FileStore) Get(ctx context.Context) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadUnlocked(); err != nil {
		return Counters{}, err
	}
	return f.state.Counters, nil
}

// Increment bumps the counter for the activity and saves the profile.
func (f *FileStore) Increment(ctx context.Context, activity session.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadUnlocked(); err != nil {
		return err
	}
	before := f.state.Counters
	if err := f.state.Counters.increment(activity); err != nil {
		return err
	}
	if err := f.saveUnlocked(); err != nil {
		f.state.Counters = before
		return err
	}
	return nil
}

// Favorites returns the starred ids for the activity.
func (f *FileStore) Favorites(ctx context.Context, activity session.Activity) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadUnlocked(); err != nil {
		return nil, err
	}
	return slices.Clone(f.state.Favorites[string(activity)]), nil
}

// ToggleFavorite stars or unstars id, saves the profile and reports whether
// the id is now starred.
func (f *FileStore) ToggleFavorite(ctx context.Context, activity session.Activity, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if id == "" {
		return false, errors.New("favorite id is empty")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadUnlocked(); err != nil {
		return false, err
	}
	key := string(activity)
	before := slices.Clone(f.state.Favorites[key])
	var starred bool
	f.state.Favorites[key], starred = toggle(f.state.Favorites[key], id)
	if err := f.saveUnlocked(); err != nil {
		f.state.Favorites[key] = before
		return false, err
	}
	return starred, nil
}

// loadUnlocked reads the profile file. Must be called with f.mu held.
func (f *FileStore) loadUnlocked() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.resetUnlocked()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var p profile
	if err := toml.Unmarshal(data, &p); err != nil {
		f.backupUnlocked("profile file corrupted", slog.String("error", err.Error()))
		f.resetUnlocked()
		return nil
	}
	if p.Version != CurrentProfileVersion {
		f.backupUnlocked("incompatible profile version",
			slog.Int("file_version", p.Version),
			slog.Int("current_version", CurrentProfileVersion))
		f.resetUnlocked()
		return nil
	}
	if p.Favorites == nil {
		p.Favorites = make(map[string][]string)
	}
	f.state = &p
	return nil
}

// backupUnlocked moves an unreadable profile aside so the next save does not
// overwrite it. Must be called with f.mu held.
func (f *FileStore) backupUnlocked(reason string, attrs ...any) {
	backupPath := f.path + ".backup"
	attrs = append(attrs, slog.String("path", f.path))
	if err := os.Rename(f.path, backupPath); err != nil {
		slog.Warn(reason+", failed to backup", append(attrs, slog.String("backup_error", err.Error()))...)
		return
	}
	slog.Warn(reason+", backed up and starting fresh", attrs...)
}

func (f *FileStore) resetUnlocked() {
	f.state = &profile{
		Version:   CurrentProfileVersion,
		User:      f.user,
		Favorites: make(map[string][]string),
	}
}

// saveUnlocked writes the profile via temp file and rename. Must be called
// with f.mu held.
func (f *FileStore) saveUnlocked() error {
	f.state.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if f.user != "" {
		f.state.User = f.user
	}

	data, err := toml.Marshal(f.state)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("rename profile: %w", err)
	}
	return nil
}
