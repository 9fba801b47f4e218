package domain

// Represents the visitation sequence of a single vehicle.
// The depot is the implicit start and end of every route and is never part of Customers.
type Route struct {
	Vehicle   int
	Customers []int
}

func (r Route) Empty() bool { return len(r.Customers) == 0 }

// Solution is the ordered set of routes read from a solver report.
// It is immutable once parsed.
type Solution struct {
	Routes []Route
}

// VehiclesUsed counts the routes that visit at least one customer.
func (s Solution) VehiclesUsed() int {
	n := 0
	for _, r := range s.Routes {
		if !r.Empty() {
			n++
		}
	}
	return n
}
