package dto

import (
	"solomon-validator/internal/domain"
	"time"
)

// ValidationRequest carries the solver report and either the name of a
// stored instance or the instance text itself.
type ValidationRequest struct {
	Instance     string `json:"instance"`
	InstanceText string `json:"instance_text"`
	Solution     string `json:"solution"`
	SolutionText string `json:"solution_text"`
	LateReturn   string `json:"late_return"`
}

type ValidationResponse struct {
	ID            int64                 `json:"id,omitempty"`
	Instance      string                `json:"instance"`
	Solution      string                `json:"solution,omitempty"`
	Valid         bool                  `json:"valid"`
	TotalDistance float64               `json:"total_distance"`
	VehiclesUsed  int                   `json:"vehicles_used"`
	Errors        []string              `json:"errors"`
	Warnings      []string              `json:"warnings"`
	Issues        []domain.Issue        `json:"issues"`
	Routes        []domain.RouteSummary `json:"routes,omitempty"`
}

// NewValidationResponse maps a result; routes are included only when requested.
func NewValidationResponse(instance, solution string, res *domain.ValidationResult, withRoutes bool) ValidationResponse {
	out := ValidationResponse{
		Instance:      instance,
		Solution:      solution,
		Valid:         res.Valid(),
		TotalDistance: res.TotalDistance,
		VehiclesUsed:  res.VehiclesUsed,
		Errors:        nonNil(res.Errors),
		Warnings:      nonNil(res.Warnings),
		Issues:        res.Issues,
	}
	if out.Issues == nil {
		out.Issues = []domain.Issue{}
	}
	if withRoutes {
		out.Routes = res.Routes
	}
	return out
}

type ValidationRecordResponse struct {
	ID            int64     `json:"id"`
	Instance      string    `json:"instance"`
	Solution      string    `json:"solution"`
	Valid         bool      `json:"valid"`
	TotalDistance float64   `json:"total_distance"`
	VehiclesUsed  int       `json:"vehicles_used"`
	Errors        []string  `json:"errors"`
	Warnings      []string  `json:"warnings"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListValidationsResponse struct {
	Validations []ValidationRecordResponse `json:"validations"`
}

func NewValidationRecordResponse(rec domain.ValidationRecord) ValidationRecordResponse {
	return ValidationRecordResponse{
		ID:            rec.ID,
		Instance:      rec.Instance,
		Solution:      rec.Solution,
		Valid:         rec.Valid,
		TotalDistance: rec.TotalDistance,
		VehiclesUsed:  rec.VehiclesUsed,
		Errors:        nonNil(rec.Errors),
		Warnings:      nonNil(rec.Warnings),
		CreatedAt:     rec.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
