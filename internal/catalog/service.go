package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
)

// DefaultTTL is how long a remote catalog stays fresh.
const DefaultTTL = 24 * time.Hour

// cacheRepository is the subset of store.CatalogStore that Service requires.
type cacheRepository interface {
	Load(ctx context.Context) ([]domain.CatalogDrink, bool, error)
	UpdatedAt(ctx context.Context) (time.Time, bool, error)
	Save(ctx context.Context, drinks []domain.CatalogDrink, at time.Time) error
	Clear(ctx context.Context) error
}

// Cache serves the cached catalog as a Provider.
type Cache struct {
	repo cacheRepository
}

func NewCache(repo cacheRepository) *Cache {
	return &Cache{repo: repo}
}

func (c *Cache) Name() string { return SourceCache }

func (c *Cache) Drinks(ctx context.Context) ([]domain.CatalogDrink, error) {
	drinks, ok, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmpty
	}
	return drinks, nil
}

// Service holds the current catalog and refreshes it through the chain
// remote, cache, builtin. Only remote results stamp the cache update time,
// so a fallback never makes the cache look fresh.
type Service struct {
	mu     sync.Mutex
	drinks []domain.CatalogDrink
	source string
	gen    uint64
	cancel context.CancelFunc

	remote Provider
	cache  cacheRepository
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService loads the cached catalog, falling back to the built-in list.
// remote may be nil when no backend is configured.
func NewService(ctx context.Context, remote Provider, cache cacheRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		remote: remote,
		cache:  cache,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	drinks, ok, err := cache.Load(ctx)
	switch {
	case err != nil:
		logger.Warn("failed to load cached catalog", "error", err)
	case ok && len(drinks) > 0:
		s.drinks, s.source = drinks, SourceCache
		logger.Info("catalog loaded", "source", SourceCache, "drinks", len(drinks))
		return s
	}

	s.useBuiltin(ctx)
	logger.Info("catalog loaded", "source", SourceBuiltin, "drinks", len(s.drinks))
	return s
}

// Refresh walks the provider chain and installs the first answer. Starting a
// refresh cancels one already in flight, which then returns ErrSuperseded.
func (s *Service) Refresh(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	rctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	chain := Chain{s.remote, NewCache(s.cache), Builtin{}}
	s.mu.Unlock()
	defer cancel()

	res, err := chain.Fetch(rctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return Result{}, ErrSuperseded
	}
	s.cancel = nil

	for _, f := range res.Trail {
		s.logger.Warn("catalog provider failed", "provider", f.Provider, "error", f.Err)
	}
	if err != nil {
		s.logger.Error("catalog refresh failed", "error", err)
		return res, err
	}

	s.drinks, s.source = res.Drinks, res.Source
	switch res.Source {
	case SourceCache:
	case SourceBuiltin:
		s.saveCache(ctx, res.Drinks, time.Time{})
	default:
		s.saveCache(ctx, res.Drinks, s.now())
	}

	s.logger.Info("catalog refreshed", "source", res.Source, "drinks", len(res.Drinks))
	return res, nil
}

// RefreshIfNeeded refreshes when the cache is missing or older than the TTL.
// It reports whether a refresh ran. Without a remote provider there is nothing
// newer to fetch, so it never runs.
func (s *Service) RefreshIfNeeded(ctx context.Context) (bool, error) {
	if s.remote == nil {
		return false, nil
	}
	updated, ok, err := s.cache.UpdatedAt(ctx)
	if err != nil {
		s.logger.Warn("failed to read catalog update time", "error", err)
	}
	if err == nil && ok && s.now().Sub(updated) < s.ttl {
		return false, nil
	}

	if _, err := s.Refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// ClearCache drops the cached catalog and reverts to the built-in list.
func (s *Service) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++

	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	s.useBuiltin(ctx)

	s.logger.Info("catalog cache cleared")
	return nil
}

// Drinks returns the current catalog filtered by category. An empty category
// returns every drink.
func (s *Service) Drinks(category domain.Category) []domain.CatalogDrink {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CatalogDrink, 0, len(s.drinks))
	for _, d := range s.drinks {
		if category == "" || d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a drink by name, ignoring case and surrounding space.
func (s *Service) Lookup(name string) (domain.CatalogDrink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	for _, d := range s.drinks {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return domain.CatalogDrink{}, fmt.Errorf("%w: drink %q", domain.ErrNotFound, name)
}

// Source names the provider the current list came from.
func (s *Service) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// useBuiltin installs the built-in list and caches it as stale. Callers hold
// s.mu or have not shared s yet.
func (s *Service) useBuiltin(ctx context.Context) {
	s.drinks, s.source = Defaults(), SourceBuiltin
	s.saveCache(ctx, s.drinks, time.Time{})
}

func (s *Service) saveCache(ctx context.Context, drinks []domain.CatalogDrink, at time.Time) {
	if err := s.cache.Save(ctx, drinks, at); err != nil {
		s.logger.Warn("failed to cache catalog", "error", err)
	}
}
