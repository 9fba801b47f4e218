package ports

import (
	"context"
	"errors"
	"solomon-validator/internal/domain"
)

var ErrInstanceNotFound = errors.New("instance not found")

// Contract for resolving benchmark instances by name (e.g. "C101").
type InstanceStore interface {
	// Return the parsed instance or an error wrapping ErrInstanceNotFound.
	LoadInstance(ctx context.Context, name string) (*domain.Instance, error)
}
