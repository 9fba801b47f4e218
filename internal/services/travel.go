package services

import (
	"math"

	"solomon-validator/internal/domain"
)

// Distance returns the Euclidean distance between two stops.
//
// Travel time is the distance itself (unit velocity), as the benchmark defines
// it. There is deliberately no speed parameter.
func Distance(a, b domain.Coordinates) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Leg is the chronology of travelling to a stop and serving it.
type Leg struct {
	Distance     float64
	Arrival      float64
	ServiceStart float64
	Wait         float64
	Departure    float64
	// Late reports arrival after the due time. Early arrival only waits.
	Late bool
}

// Advance moves a vehicle that is free at time t at position from to the stop next.
func Advance(t float64, from domain.Coordinates, next domain.Customer) Leg {
	d := Distance(from, next.Coordinates)
	arrival := t + d
	start := math.Max(arrival, next.ReadyTime)

	return Leg{
		Distance:     d,
		Arrival:      arrival,
		ServiceStart: start,
		Wait:         start - arrival,
		Departure:    start + next.ServiceTime,
		Late:         arrival > next.DueTime,
	}
}
