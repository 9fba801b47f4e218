package domain

import "time"

// ValidationRecord is the persisted outcome of one validation, kept for
// statistics tooling that aggregates executions of a solver.
type ValidationRecord struct {
	ID            int64
	Instance      string
	Solution      string
	Valid         bool
	TotalDistance float64
	VehiclesUsed  int
	Errors        []string
	Warnings      []string
	CreatedAt     time.Time
}

// NewValidationRecord captures the outcome of res for the named instance and solution.
func NewValidationRecord(instance, solution string, res ValidationResult, at time.Time) ValidationRecord {
	return ValidationRecord{
		Instance:      instance,
		Solution:      solution,
		Valid:         res.Valid(),
		TotalDistance: res.TotalDistance,
		VehiclesUsed:  res.VehiclesUsed,
		Errors:        res.Errors,
		Warnings:      res.Warnings,
		CreatedAt:     at.UTC(),
	}
}
