package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/kv"
)

// EntryStore persists the whole entry list as one JSON array.
type EntryStore struct {
	kv kv.Store
}

func NewEntryStore(store kv.Store) *EntryStore {
	return &EntryStore{kv: store}
}

// Load returns the saved entries, or an empty list when nothing was saved yet.
func (s *EntryStore) Load(ctx context.Context) ([]domain.Entry, error) {
	data, ok, err := s.kv.Get(ctx, KeyEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	entries := make([]domain.Entry, 0)
	if !ok {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return entries, nil
}

func (s *EntryStore) Save(ctx context.Context, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := s.kv.Put(ctx, KeyEntries, data); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}
