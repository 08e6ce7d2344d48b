package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/metrics"
)

// entryRepository is the subset of store.EntryStore that Ledger requires.
type entryRepository interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}

// profileRepository is the subset of store.ProfileStore that Ledger requires.
type profileRepository interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}

// Ledger owns the logged entries and the user profile. Every mutation is
// persisted before it becomes visible; when saving fails the in-memory state
// is left as it was and the error wraps domain.ErrPersist.
type Ledger struct {
	mu      sync.Mutex
	entries []domain.Entry
	profile domain.Profile

	entryStore   entryRepository
	profileStore profileRepository
	now          func() time.Time
	loc          *time.Location
	logger       *slog.Logger
}

type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// NewLedger loads the persisted entries and profile.
func NewLedger(
	ctx context.Context,
	entryStore entryRepository,
	profileStore profileRepository,
	logger *slog.Logger,
	opts ...Option,
) (*Ledger, error) {
	l := &Ledger{
		entryStore:   entryStore,
		profileStore: profileStore,
		now:          time.Now,
		loc:          time.Local,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(l)
	}

	entries, err := entryStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	profile, err := profileStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	l.entries = entries
	l.profile = profile

	logger.Info("ledger loaded", "entries", len(entries))
	return l, nil
}

// Add validates e and appends it. A missing ID or timestamp is filled in.
func (l *Ledger) Add(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Unit = strings.TrimSpace(e.Unit)
	if err := e.Validate(); err != nil {
		return domain.Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if l.indexOf(e.ID) >= 0 {
		return domain.Entry{}, fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, e.ID)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}

	next := make([]domain.Entry, 0, len(l.entries)+1)
	next = append(next, l.entries...)
	next = append(next, e)
	if err := l.commitEntries(ctx, next); err != nil {
		return domain.Entry{}, err
	}

	metrics.RecordEntryLogged(string(e.Category))
	l.logger.Info("entry added", "id", e.ID, "category", e.Category, "name", e.Name)
	return e, nil
}

// Remove deletes the entry with id.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: entry %s", domain.ErrNotFound, id)
	}

	next := make([]domain.Entry, 0, len(l.entries)-1)
	next = append(next, l.entries[:idx]...)
	next = append(next, l.entries[idx+1:]...)
	if err := l.commitEntries(ctx, next); err != nil {
		return err
	}

	l.logger.Info("entry removed", "id", id)
	return nil
}

// RemoveAll deletes every entry of category and reports how many were removed.
func (l *Ledger) RemoveAll(ctx context.Context, category domain.Category) (int, error) {
	if !category.Valid() {
		return 0, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidEntry, category)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]domain.Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Category != category {
			next = append(next, e)
		}
	}
	removed := len(l.entries) - len(next)
	if err := l.commitEntries(ctx, next); err != nil {
		return 0, err
	}

	l.logger.Info("entries removed", "category", category, "count", removed)
	return removed, nil
}

// UpdateTimestamp moves the entry with id to t.
func (l *Ledger) UpdateTimestamp(ctx context.Context, id string, t time.Time) (domain.Entry, error) {
	if t.IsZero() {
		return domain.Entry{}, fmt.Errorf("%w: timestamp is required", domain.ErrInvalidEntry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return domain.Entry{}, fmt.Errorf("%w: entry %s", domain.ErrNotFound, id)
	}

	next := append([]domain.Entry(nil), l.entries...)
	next[idx].Timestamp = t
	if err := l.commitEntries(ctx, next); err != nil {
		return domain.Entry{}, err
	}

	l.logger.Info("entry timestamp updated", "id", id, "timestamp", t)
	return next[idx], nil
}

// Entry returns the entry with id.
func (l *Ledger) Entry(id string) (domain.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return domain.Entry{}, fmt.Errorf("%w: entry %s", domain.ErrNotFound, id)
	}
	return l.entries[idx], nil
}

// Query returns the entries of category in insertion order, optionally limited
// to an inclusive time range. An empty category matches every entry.
func (l *Ledger) Query(category domain.Category, within *domain.TimeRange) []domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filter(l.entries, category, within)
}

// Today returns the entries of category logged on the current calendar day.
func (l *Ledger) Today(category domain.Category) []domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	day := l.dayRange()
	return filter(l.entries, category, &day)
}

func (l *Ledger) Profile() domain.Profile {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profile
}

// UpdateProfile validates p and replaces the stored profile.
func (l *Ledger) UpdateProfile(ctx context.Context, p domain.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.profileStore.Save(ctx, p); err != nil {
		l.logger.Error("failed to persist profile", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	l.profile = p

	l.logger.Info("profile updated", "age", p.Age, "sex", p.Sex)
	return nil
}

// commitEntries saves next and only then installs it. Callers hold l.mu.
func (l *Ledger) commitEntries(ctx context.Context, next []domain.Entry) error {
	if err := l.entryStore.Save(ctx, next); err != nil {
		l.logger.Error("failed to persist entries", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	l.entries = next
	return nil
}

func (l *Ledger) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func filter(entries []domain.Entry, category domain.Category, within *domain.TimeRange) []domain.Entry {
	out := make([]domain.Entry, 0)
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		if within != nil && !within.Contains(e.Timestamp) {
			continue
		}
		out = append(out, e)
	}
	return out
}
