// Package content holds the browsable catalog of workouts, study tips and
// recipes, and turns catalog records into playable sessions.
package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/npratt/iqfit/internal/session"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("content not found")
	// ErrLocked is returned when a premium record is requested without a
	// premium profile.
	ErrLocked = errors.New("content requires premium access")
)

// DefaultPageSize is the number of records per browser page.
const DefaultPageSize = 6

// DefaultCacheMaxCost bounds the normalized session cache, counted in steps.
const DefaultCacheMaxCost = 1 << 14

// Catalog is an ordered, read-only set of records.
type Catalog struct {
	records []Record
	byID    map[string]int
	premium bool
	cache   *ristretto.Cache[string, *session.Session]
}

// Option configures a Catalog.
type Option func(*catalogOptions)

type catalogOptions struct {
	premium      bool
	cacheMaxCost int64
}

// WithPremium unlocks premium records.
func WithPremium(premium bool) Option {
	return func(o *catalogOptions) {
		o.premium = premium
	}
}

// WithCacheMaxCost sets the session cache capacity in steps.
func WithCacheMaxCost(cost int64) Option {
	return func(o *catalogOptions) {
		if cost > 0 {
			o.cacheMaxCost = cost
		}
	}
}

// New builds a catalog from records. A record whose id was already seen
// replaces the earlier one in place, so later sources override earlier
// ones. Records without an id are given one from their position.
func New(records []Record, opts ...Option) (*Catalog, error) {
	o := catalogOptions{cacheMaxCost: DefaultCacheMaxCost}
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *session.Session]{
		NumCounters: o.cacheMaxCost * 10,
		MaxCost:     o.cacheMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}

	c := &Catalog{
		byID:    make(map[string]int, len(records)),
		premium: o.premium,
		cache:   cache,
	}
	for i, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			r.ID = fmt.Sprintf("%s-%d", r.Activity(), i+1)
		}
		if idx, ok := c.byID[r.ID]; ok {
			c.records[idx] = r
			continue
		}
		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}
	return c, nil
}

// Load builds a catalog from the built-in records followed by every catalog
// file found in dirs.
func Load(dirs []string, opts ...Option) (*Catalog, error) {
	records, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		recs, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return New(records, opts...)
}

// Close releases the session cache.
func (c *Catalog) Close() {
	c.cache.Close()
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Premium reports whether premium records are unlocked.
func (c *Catalog) Premium() bool {
	return c.premium
}

// Get returns the record with the given id.
func (c *Catalog) Get(id string) (Record, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.records[idx], nil
}

// Locked reports whether r is unavailable to the current profile.
func (c *Catalog) Locked(r Record) bool {
	return r.Premium() && !c.premium
}

// Session returns the playable session for the record with the given id.
// Sessions are normalized once and cached.
func (c *Catalog) Session(id string) (*session.Session, error) {
	r, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if c.Locked(r) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, r.Title)
	}
	if s, ok := c.cache.Get(r.ID); ok {
		return s, nil
	}
	s := session.FromSource(r.Source())
	c.cache.Set(r.ID, s, int64(s.Len()))
	return s, nil
}

// Filter selects records in a browser view.
type Filter struct {
	Activity session.Activity
	// Category matches case-insensitively. Empty matches every category.
	Category string
	// Query must match every word against title, description or category.
	Query string
	// Favorites, when non-nil, restricts the result to these ids.
	Favorites []string
}

// Filter returns the records matching f in catalog order.
func (c *Catalog) Filter(f Filter) []Record {
	var out []Record
	for _, r := range c.records {
		if f.Activity != "" && r.Activity() != f.Activity {
			continue
		}
		if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
			continue
		}
		if f.Favorites != nil && !slices.Contains(f.Favorites, r.ID) {
			continue
		}
		if f.Query != "" && !r.matches(f.Query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Categories returns the distinct categories of an activity in first-seen
// order. An empty activity covers every record.
func (c *Catalog) Categories(activity session.Activity) []string {
	var out []string
	for _, r := range c.records {
		if activity != "" && r.Activity() != activity {
			continue
		}
		if r.Category == "" || slices.ContainsFunc(out, func(s string) bool { return strings.EqualFold(s, r.Category) }) {
			continue
		}
		out = append(out, r.Category)
	}
	return out
}

// PageInfo describes one page of a paginated listing. Number is 1-based.
type PageInfo struct {
	Number int
	Pages  int
	Total  int
}

// Page returns the n-th page (1-based) of records. Out-of-range page numbers
// clamp to the first or last page.
func Page(records []Record, n, size int) ([]Record, PageInfo) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(records)
	pages := (total + size - 1) / size
	if pages == 0 {
		return nil, PageInfo{Number: 1, Pages: 1, Total: 0}
	}
	n = max(1, min(n, pages))
	start := (n - 1) * size
	end := min(start+size, total)
	return records[start:end], PageInfo{Number: n, Pages: pages, Total: total}
}
