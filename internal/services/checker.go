package services

import (
	"fmt"
	"slices"
	"strings"

	"solomon-validator/internal/domain"
)

// LateReturnPolicy sets the severity of a vehicle reaching the depot after its due time.
// Lateness at a customer is always an error.
type LateReturnPolicy string

const (
	LateReturnWarning LateReturnPolicy = "warning"
	LateReturnError   LateReturnPolicy = "error"
)

func ParseLateReturnPolicy(s string) (LateReturnPolicy, error) {
	switch p := LateReturnPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return LateReturnWarning, nil
	case LateReturnWarning, LateReturnError:
		return p, nil
	default:
		return "", fmt.Errorf("parse late return policy: unknown value %q (want warning or error)", s)
	}
}

func (p LateReturnPolicy) severity() domain.Severity {
	if p == LateReturnError {
		return domain.SeverityError
	}
	return domain.SeverityWarning
}

type Option func(*Checker)

func WithLateReturnPolicy(p LateReturnPolicy) Option {
	return func(c *Checker) { c.lateReturn = p }
}

// Checker applies the coverage, capacity and time-window rules of VRPTW.
// It holds configuration only and may be shared between goroutines.
type Checker struct {
	lateReturn LateReturnPolicy
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{lateReturn: LateReturnWarning}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks a solution against an instance with a default Checker.
func Validate(inst *domain.Instance, sol domain.Solution, opts ...Option) domain.ValidationResult {
	return NewChecker(opts...).Validate(inst, sol)
}

// Validate runs every constraint pass and collects all violations; it never stops at the first one.
// Distance and vehicle count are reported whether or not the solution is feasible.
func (c *Checker) Validate(inst *domain.Instance, sol domain.Solution) domain.ValidationResult {
	res := domain.ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Issues:   []domain.Issue{},
	}

	checkCoverage(&res, inst, sol)
	checkCapacity(&res, inst, sol)

	res.Routes = make([]domain.RouteSummary, 0, len(sol.Routes))
	for i, route := range sol.Routes {
		res.Routes = append(res.Routes, c.simulateRoute(&res, inst, i+1, route))
	}

	summarize(&res, sol)
	return res
}

// checkCoverage requires every non-depot customer to be visited exactly once.
func checkCoverage(res *domain.ValidationResult, inst *domain.Instance, sol domain.Solution) {
	visits := make(map[int][]int)
	for i, route := range sol.Routes {
		for _, id := range route.Customers {
			if id == domain.DepotID {
				continue
			}
			visits[id] = append(visits[id], i+1)
		}
	}

	repeated := make([]int, 0)
	for id, routes := range visits {
		if len(routes) > 1 {
			repeated = append(repeated, id)
		}
	}
	slices.Sort(repeated)

	for _, id := range repeated {
		routes := visits[id]
		res.Add(domain.Issue{
			Kind:       domain.IssueDuplicateVisit,
			Severity:   domain.SeverityError,
			CustomerID: id,
			Visits:     len(routes),
			Message:    fmt.Sprintf("customer %d visited %d times (routes %s)", id, len(routes), joinInts(routes)),
		})
	}

	var missing []int
	for _, id := range inst.CustomerIDs() {
		if _, ok := visits[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		res.Add(domain.Issue{
			Kind:     domain.IssueMissingCustomers,
			Severity: domain.SeverityError,
			Missing:  missing,
			Message:  fmt.Sprintf("%d customers not visited: [%s]", len(missing), joinInts(missing)),
		})
	}
}

// checkCapacity bounds the summed demand of each route by the vehicle capacity (inclusive).
func checkCapacity(res *domain.ValidationResult, inst *domain.Instance, sol domain.Solution) {
	for i, route := range sol.Routes {
		demand := routeDemand(inst, route)
		if demand <= inst.VehicleCapacity {
			continue
		}

		res.Add(domain.Issue{
			Kind:     domain.IssueCapacityExceeded,
			Severity: domain.SeverityError,
			Route:    i + 1,
			Demand:   demand,
			Capacity: inst.VehicleCapacity,
			Overflow: demand - inst.VehicleCapacity,
			Message: fmt.Sprintf(
				"route %d exceeds vehicle capacity: demand %d, capacity %d (overflow %d)",
				i+1, demand, inst.VehicleCapacity, demand-inst.VehicleCapacity,
			),
		})
	}
}

func routeDemand(inst *domain.Instance, route domain.Route) int {
	demand := 0
	for _, id := range route.Customers {
		if c, ok := inst.Customer(id); ok {
			demand += c.Demand
		}
	}
	return demand
}

// simulateRoute drives one vehicle from the depot through its stops and back.
//
// The clock starts at the depot's ready time. A late arrival is recorded and the
// simulation continues, so every violation of the route is reported. Unknown
// customer ids are reported and skipped as zero-distance, zero-duration steps.
func (c *Checker) simulateRoute(
	res *domain.ValidationResult,
	inst *domain.Instance,
	index int,
	route domain.Route,
) domain.RouteSummary {
	depot := inst.Depot()
	summary := domain.RouteSummary{
		Index:      index,
		Vehicle:    route.Vehicle,
		Demand:     routeDemand(inst, route),
		ReturnTime: depot.ReadyTime,
		Stops:      make([]domain.StopTrace, 0, len(route.Customers)+1),
	}
	if route.Empty() {
		return summary
	}

	t := depot.ReadyTime
	pos := depot.Coordinates

	for _, id := range route.Customers {
		cust, ok := inst.Customer(id)
		if !ok {
			res.Add(domain.Issue{
				Kind:       domain.IssueUnknownCustomer,
				Severity:   domain.SeverityError,
				Route:      index,
				CustomerID: id,
				Message:    fmt.Sprintf("route %d: customer %d does not exist in the instance", index, id),
			})
			summary.Stops = append(summary.Stops, domain.StopTrace{CustomerID: id, Arrival: t, ServiceStart: t, Departure: t, Unknown: true})
			continue
		}

		leg := Advance(t, pos, cust)
		if leg.Late {
			res.Add(domain.Issue{
				Kind:       domain.IssueTimeWindow,
				Severity:   domain.SeverityError,
				Route:      index,
				CustomerID: id,
				Arrival:    leg.Arrival,
				Deadline:   cust.DueTime,
				Delay:      leg.Arrival - cust.DueTime,
				Message: fmt.Sprintf(
					"route %d: customer %d visited outside its time window: arrival %.2f, deadline %.2f (late by %.2f)",
					index, id, leg.Arrival, cust.DueTime, leg.Arrival-cust.DueTime,
				),
			})
		}

		summary.Distance += leg.Distance
		summary.Stops = append(summary.Stops, traceOf(cust, leg))
		t = leg.Departure
		pos = cust.Coordinates
	}

	back := Advance(t, pos, depot)
	if back.Late {
		sev := c.lateReturn.severity()
		res.Add(domain.Issue{
			Kind:       domain.IssueLateReturn,
			Severity:   sev,
			Route:      index,
			CustomerID: domain.DepotID,
			Arrival:    back.Arrival,
			Deadline:   depot.DueTime,
			Delay:      back.Arrival - depot.DueTime,
			Message: fmt.Sprintf(
				"route %d returns to the depot outside its time window: arrival %.2f, deadline %.2f",
				index, back.Arrival, depot.DueTime,
			),
		})
	}

	summary.Distance += back.Distance
	summary.ReturnTime = back.Arrival
	summary.Stops = append(summary.Stops, traceOf(depot, back))

	return summary
}

func traceOf(c domain.Customer, leg Leg) domain.StopTrace {
	return domain.StopTrace{
		CustomerID:   c.ID,
		Distance:     leg.Distance,
		Arrival:      leg.Arrival,
		ReadyTime:    c.ReadyTime,
		DueTime:      c.DueTime,
		Wait:         leg.Wait,
		ServiceStart: leg.ServiceStart,
		Departure:    leg.Departure,
		Late:         leg.Late,
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
