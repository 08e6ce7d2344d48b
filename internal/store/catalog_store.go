package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/kv"
)

// CatalogStore caches the last good catalog together with its fetch time.
type CatalogStore struct {
	kv kv.Store
}

func NewCatalogStore(store kv.Store) *CatalogStore {
	return &CatalogStore{kv: store}
}

// Load returns the cached drinks. ok is false when no cache exists.
func (s *CatalogStore) Load(ctx context.Context) (drinks []domain.CatalogDrink, ok bool, err error) {
	data, ok, err := s.kv.Get(ctx, KeyCatalog)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load catalog cache: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	if err := json.Unmarshal(data, &drinks); err != nil {
		return nil, false, fmt.Errorf("failed to decode catalog cache: %w", err)
	}
	return drinks, true, nil
}

// UpdatedAt returns when the cache was last written. ok is false when unknown.
func (s *CatalogStore) UpdatedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	data, ok, err := s.kv.Get(ctx, KeyCatalogUpdate)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load catalog update time: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse catalog update time: %w", err)
	}
	return t, true, nil
}

// Save replaces the cache and stamps it with at.
func (s *CatalogStore) Save(ctx context.Context, drinks []domain.CatalogDrink, at time.Time) error {
	data, err := json.Marshal(drinks)
	if err != nil {
		return fmt.Errorf("failed to encode catalog cache: %w", err)
	}
	if err := s.kv.Put(ctx, KeyCatalog, data); err != nil {
		return fmt.Errorf("failed to save catalog cache: %w", err)
	}
	if err := s.kv.Put(ctx, KeyCatalogUpdate, []byte(at.UTC().Format(time.RFC3339Nano))); err != nil {
		return fmt.Errorf("failed to save catalog update time: %w", err)
	}
	return nil
}

// Clear removes the cache and its timestamp.
func (s *CatalogStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyCatalog); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	if err := s.kv.Delete(ctx, KeyCatalogUpdate); err != nil {
		return fmt.Errorf("failed to clear catalog update time: %w", err)
	}
	return nil
}
