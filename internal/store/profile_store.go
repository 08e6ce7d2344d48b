package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/kv"
)

type ProfileStore struct {
	kv kv.Store
}

func NewProfileStore(store kv.Store) *ProfileStore {
	return &ProfileStore{kv: store}
}

// Load returns the saved profile, or domain.DefaultProfile when none exists.
func (s *ProfileStore) Load(ctx context.Context) (domain.Profile, error) {
	data, ok, err := s.kv.Get(ctx, KeyProfile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !ok {
		return domain.DefaultProfile(), nil
	}
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) Save(ctx context.Context, p domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, KeyProfile, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
