package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "solomon:instance:"

// Redis backed cache of parsed benchmark instances.
// Entries are JSON snapshots and are rebuilt through domain.NewInstance on read,
// so a corrupted entry is reported instead of served.
type RedisInstanceCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisInstanceCache(client *redis.Client, ttl time.Duration) *RedisInstanceCache {
	return &RedisInstanceCache{Client: client, TTL: ttl, Prefix: defaultKeyPrefix}
}

type instanceSnapshot struct {
	Name            string            `json:"name"`
	NumVehicles     int               `json:"num_vehicles"`
	VehicleCapacity int               `json:"vehicle_capacity"`
	Customers       []domain.Customer `json:"customers"`
}

func (c *RedisInstanceCache) key(name string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return prefix + strings.ToUpper(strings.TrimSpace(name))
}

// Fetch a cached instance. A miss is (nil, false, nil).
func (c *RedisInstanceCache) Get(ctx context.Context, name string) (_ *domain.Instance, _ bool, err error) {
	defer obs.Time(ctx, "instance.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("instance cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("instance cache: get %q: %w", name, err)
	}

	var snap instanceSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("instance cache: decode %q: %w", name, err)
	}

	inst, err := domain.NewInstance(snap.Name, snap.NumVehicles, snap.VehicleCapacity, snap.Customers)
	if err != nil {
		return nil, false, fmt.Errorf("instance cache: rebuild %q: %w", name, err)
	}

	return inst, true, nil
}

// Store an instance under name, replacing any previous entry.
func (c *RedisInstanceCache) Put(ctx context.Context, name string, inst *domain.Instance) (err error) {
	defer obs.Time(ctx, "instance.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("instance cache: client is nil")
	}
	if inst == nil {
		return errors.New("instance cache: instance is nil")
	}

	raw, err := json.Marshal(instanceSnapshot{
		Name:            inst.Name,
		NumVehicles:     inst.NumVehicles,
		VehicleCapacity: inst.VehicleCapacity,
		Customers:       inst.Customers,
	})
	if err != nil {
		return fmt.Errorf("instance cache: encode %q: %w", name, err)
	}

	if err := c.Client.Set(ctx, c.key(name), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("instance cache: set %q: %w", name, err)
	}

	return nil
}
