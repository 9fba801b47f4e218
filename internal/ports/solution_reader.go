package ports

import (
	"context"
	"solomon-validator/internal/domain"
)

// Contract for loading a solver report from a location such as a file path.
type SolutionReader interface {
	ReadSolution(ctx context.Context, location string) (domain.Solution, error)
}
