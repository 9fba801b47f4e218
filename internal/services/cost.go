package services

import (
	"slices"

	"solomon-validator/internal/domain"
)

// summarize fills the objective of a simulated solution.
//
// Route distances are summed in ascending order so the total does not depend
// on the order in which routes are listed.
func summarize(res *domain.ValidationResult, sol domain.Solution) {
	dists := make([]float64, 0, len(res.Routes))
	for _, r := range res.Routes {
		dists = append(dists, r.Distance)
	}
	slices.Sort(dists)

	total := 0.0
	for _, d := range dists {
		total += d
	}

	res.TotalDistance = total
	res.VehiclesUsed = sol.VehiclesUsed()
}
