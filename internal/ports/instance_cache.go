package ports

import (
	"context"
	"solomon-validator/internal/domain"
)

// Cache of parsed instances keyed by name.
type InstanceCache interface {
	// Return the cached instance; ok is false on a miss.
	Get(ctx context.Context, name string) (inst *domain.Instance, ok bool, err error)
	// Store inst under the name it was looked up by.
	Put(ctx context.Context, name string, inst *domain.Instance) error
}
