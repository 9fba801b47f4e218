package ports

import (
	"context"
	"solomon-validator/internal/domain"
)

// Port: an append-only store of validation outcomes.
type ResultRepository interface {
	// Persist a record and return its assigned id.
	SaveResult(ctx context.Context, rec domain.ValidationRecord) (int64, error)
	// List the records of one instance, oldest first.
	ListResults(ctx context.Context, instance string) ([]domain.ValidationRecord, error)
}
