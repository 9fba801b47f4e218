package cache

import (
	"context"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/ports"

	"github.com/rs/zerolog"
)

// CachedInstanceStore is a read-through InstanceStore.
// Cache failures are logged and never fail a lookup; the backing store is authoritative.
type CachedInstanceStore struct {
	Store ports.InstanceStore
	Cache ports.InstanceCache
}

func NewCachedInstanceStore(store ports.InstanceStore, cache ports.InstanceCache) *CachedInstanceStore {
	return &CachedInstanceStore{Store: store, Cache: cache}
}

func (s *CachedInstanceStore) LoadInstance(ctx context.Context, name string) (*domain.Instance, error) {
	logger := zerolog.Ctx(ctx)

	if s.Cache != nil {
		inst, ok, err := s.Cache.Get(ctx, name)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("instance", name).Msg("instance cache read failed")
		case ok:
			return inst, nil
		}
	}

	inst, err := s.Store.LoadInstance(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, name, inst); err != nil {
			logger.Warn().Err(err).Str("instance", name).Msg("instance cache write failed")
		}
	}

	return inst, nil
}
