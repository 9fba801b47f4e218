package domain

import (
	"errors"
	"testing"
)

func TestNewInstance(t *testing.T) {
	customers := []Customer{
		{ID: 0, Coordinates: Coordinates{X: 40, Y: 50}, DueTime: 1236},
		{ID: 2, Coordinates: Coordinates{X: 45, Y: 70}, Demand: 30, ReadyTime: 825, DueTime: 870, ServiceTime: 90},
		{ID: 1, Coordinates: Coordinates{X: 45, Y: 68}, Demand: 10, ReadyTime: 912, DueTime: 967, ServiceTime: 90},
	}

	inst, err := NewInstance("C101", 25, 200, customers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := inst.Depot(); got.ID != DepotID || got.DueTime != 1236 {
		t.Fatalf("depot = %+v, want id 0 with due 1236", got)
	}

	c, ok := inst.Customer(2)
	if !ok || c.Demand != 30 {
		t.Fatalf("customer 2 = %+v (ok=%v), want demand 30", c, ok)
	}

	if _, ok := inst.Customer(99); ok {
		t.Fatalf("customer 99 should not exist")
	}

	ids := inst.CustomerIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("customer ids = %v, want [1 2]", ids)
	}

	// The instance keeps its own copy of the records.
	customers[1].Demand = 999
	if c, _ := inst.Customer(2); c.Demand != 30 {
		t.Fatalf("instance mutated through caller slice: demand=%d", c.Demand)
	}
}

func TestNewInstanceInvariants(t *testing.T) {
	depot := Customer{ID: 0, DueTime: 100}
	tests := []struct {
		name      string
		vehicles  int
		capacity  int
		customers []Customer
		want      error
	}{
		{"no customers", 1, 10, nil, ErrNoCustomers},
		{"no depot", 1, 10, []Customer{{ID: 1}}, ErrNoDepot},
		{"duplicate id", 1, 10, []Customer{depot, {ID: 1}, {ID: 1}}, ErrDuplicateCustomer},
		{"depot demand", 1, 10, []Customer{{ID: 0, Demand: 5}}, ErrDepotDemand},
		{"zero capacity", 1, 0, []Customer{depot}, ErrInvalidFleet},
		{"zero vehicles", 0, 10, []Customer{depot}, ErrInvalidFleet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInstance("x", tt.vehicles, tt.capacity, tt.customers)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSolutionVehiclesUsed(t *testing.T) {
	sol := Solution{Routes: []Route{
		{Vehicle: 1, Customers: []int{1, 2}},
		{Vehicle: 2},
		{Vehicle: 3, Customers: []int{3}},
	}}

	if got := sol.VehiclesUsed(); got != 2 {
		t.Fatalf("vehicles used = %d, want 2", got)
	}
}

func TestValidationResultAdd(t *testing.T) {
	var res ValidationResult
	res.Add(Issue{Kind: IssueLateReturn, Severity: SeverityWarning, Message: "late"})
	if !res.Valid() {
		t.Fatalf("warnings must not invalidate the result")
	}

	res.Add(Issue{Kind: IssueTimeWindow, Severity: SeverityError, Message: "window"})
	if res.Valid() {
		t.Fatalf("an error must invalidate the result")
	}
	if len(res.Warnings) != 1 || len(res.Errors) != 1 || len(res.Issues) != 2 {
		t.Fatalf("unexpected lists: errors=%v warnings=%v issues=%d", res.Errors, res.Warnings, len(res.Issues))
	}
	if got := res.IssuesOf(IssueTimeWindow); len(got) != 1 || got[0].Message != "window" {
		t.Fatalf("IssuesOf(time_window) = %+v", got)
	}
}
