package domain

// DepotID is the reserved customer id of the depot.
// Every route implicitly starts and ends at the depot; it is never stored in a Route.
const DepotID = 0

// Represents one stop of a benchmark instance.
// ReadyTime and DueTime bound the start of service, not the departure.
type Customer struct {
	ID int
	Coordinates
	Demand      int
	ReadyTime   float64
	DueTime     float64
	ServiceTime float64
}

func (c Customer) IsDepot() bool { return c.ID == DepotID }
