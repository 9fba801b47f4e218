package domain

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoCustomers       = errors.New("instance has no customer records")
	ErrNoDepot           = errors.New("instance has no depot (customer id 0)")
	ErrDuplicateCustomer = errors.New("duplicate customer id")
	ErrDepotDemand       = errors.New("depot demand must be zero")
	ErrInvalidFleet      = errors.New("fleet description must be positive")
)

// Instance is a read-only benchmark problem: the depot, its customers and the fleet.
// It is safe to share between any number of concurrent validations.
type Instance struct {
	Name            string
	NumVehicles     int
	VehicleCapacity int
	Customers       []Customer

	byID map[int]int
}

// NewInstance builds an Instance and enforces its invariants.
func NewInstance(name string, numVehicles, capacity int, customers []Customer) (*Instance, error) {
	if numVehicles <= 0 || capacity <= 0 {
		return nil, fmt.Errorf("new instance: vehicles=%d capacity=%d: %w", numVehicles, capacity, ErrInvalidFleet)
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("new instance: %w", ErrNoCustomers)
	}

	byID := make(map[int]int, len(customers))
	for i, c := range customers {
		if _, ok := byID[c.ID]; ok {
			return nil, fmt.Errorf("new instance: customer %d: %w", c.ID, ErrDuplicateCustomer)
		}
		byID[c.ID] = i
	}

	depot, ok := byID[DepotID]
	if !ok {
		return nil, fmt.Errorf("new instance: %w", ErrNoDepot)
	}
	if customers[depot].Demand != 0 {
		return nil, fmt.Errorf("new instance: demand=%d: %w", customers[depot].Demand, ErrDepotDemand)
	}

	return &Instance{
		Name:            name,
		NumVehicles:     numVehicles,
		VehicleCapacity: capacity,
		Customers:       slices.Clone(customers),
		byID:            byID,
	}, nil
}

// Customer returns the customer with the given id.
func (in *Instance) Customer(id int) (Customer, bool) {
	i, ok := in.byID[id]
	if !ok {
		return Customer{}, false
	}
	return in.Customers[i], true
}

func (in *Instance) Depot() Customer {
	return in.Customers[in.byID[DepotID]]
}

// CustomerIDs returns the ascending ids of every non-depot customer.
func (in *Instance) CustomerIDs() []int {
	ids := make([]int, 0, len(in.Customers)-1)
	for _, c := range in.Customers {
		if !c.IsDepot() {
			ids = append(ids, c.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
