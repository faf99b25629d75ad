package stats

import (
	"context"
	"slices"
	"sync"

	"github.com/npratt/iqfit/internal/session"
)

// MemoryStore keeps counters and favorites in memory.
type MemoryStore struct {
	mu        sync.Mutex
	counters  Counters
	favorites map[session.Activity][]string
}

var _ Profile = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{favorites: make(map[session.Activity][]string)}
}

// Get returns a snapshot of the counters.
func (m *MemoryStore) Get(ctx context.Context) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters, nil
}

// Increment bumps the counter for the activity.
func (m *MemoryStore) Increment(ctx context.Context, activity session.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters.increment(activity)
}

// Favorites returns the starred ids for the activity in the order they were added.
func (m *MemoryStore) Favorites(ctx context.Context, activity session.Activity) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites[activity]), nil
}

// ToggleFavorite stars or unstars id and reports whether it is now starred.
func (m *MemoryStore) ToggleFavorite(ctx context.Context, activity session.Activity, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var starred bool
	m.favorites[activity], starred = toggle(m.favorites[activity], id)
	return starred, nil
}

func toggle(ids []string, id string) ([]string, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1), false
	}
	return append(ids, id), true
}
