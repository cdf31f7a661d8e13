package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/mingle/internal/domain/model"
)

// MemDirectory implements Directory with plain maps under a RWMutex.
// Snapshot reads copy the collections so the recommendation engine can
// work over them without holding the lock.
type MemDirectory struct {
	mu         sync.RWMutex
	accounts   map[string]model.Account
	activities map[string]model.Activity
	events     map[string]model.Event

	initialCapacity int
}

// Option applies a configuration option to the MemDirectory.
type Option func(*MemDirectory)

// WithInitialCapacity pre-sizes the entity maps.
func WithInitialCapacity(n int) Option {
	return func(d *MemDirectory) {
		if n > 0 {
			d.initialCapacity = n
		}
	}
}

// NewMemDirectory creates an empty in-memory directory.
func NewMemDirectory(opts ...Option) *MemDirectory {
	d := &MemDirectory{}
	for _, opt := range opts {
		opt(d)
	}
	d.accounts = make(map[string]model.Account, d.initialCapacity)
	d.activities = make(map[string]model.Activity, d.initialCapacity)
	d.events = make(map[string]model.Event, d.initialCapacity)
	return d
}

// UpsertAccounts inserts or replaces accounts by id.
func (d *MemDirectory) UpsertAccounts(_ context.Context, accounts []model.Account) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range accounts {
		if a.ID == "" {
			return 0, fmt.Errorf("account: %w", ErrMissingID)
		}
		d.accounts[a.ID] = a
	}
	return len(accounts), nil
}

// UpsertActivities inserts or replaces activities by id.
func (d *MemDirectory) UpsertActivities(_ context.Context, activities []model.Activity) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range activities {
		if a.ID == "" {
			return 0, fmt.Errorf("activity: %w", ErrMissingID)
		}
		d.activities[a.ID] = a
	}
	return len(activities), nil
}

// UpsertEvents inserts or replaces events by id.
func (d *MemDirectory) UpsertEvents(_ context.Context, events []model.Event) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range events {
		if e.ID == "" {
			return 0, fmt.Errorf("event: %w", ErrMissingID)
		}
		d.events[e.ID] = e
	}
	return len(events), nil
}

// Account returns one account by id.
func (d *MemDirectory) Account(_ context.Context, id string) (model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	account, ok := d.accounts[id]
	if !ok {
		return model.Account{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return account, nil
}

// Accounts returns every account ordered by id.
func (d *MemDirectory) Accounts(_ context.Context) []model.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Activities returns every activity ordered by id.
func (d *MemDirectory) Activities(_ context.Context) []model.Activity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Activity, 0, len(d.activities))
	for _, a := range d.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Events returns every event ordered by id.
func (d *MemDirectory) Events(_ context.Context) []model.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Event, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts returns the directory sizes.
func (d *MemDirectory) Counts(_ context.Context) (accounts, activities, events int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts), len(d.activities), len(d.events)
}
