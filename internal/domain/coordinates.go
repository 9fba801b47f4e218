package domain

// Immutable planar coordinates of a benchmark stop.
type Coordinates struct {
	X float64
	Y float64
}
