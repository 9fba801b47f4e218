package services

import (
	"math"
	"testing"

	"solomon-validator/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIsEuclideanAndSymmetric(t *testing.T) {
	a := domain.Coordinates{X: 40, Y: 50}
	b := domain.Coordinates{X: 45, Y: 68}

	assert.InDelta(t, math.Sqrt(349), Distance(a, b), 1e-12)
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.Equal(t, 0.0, Distance(a, a))
}

func TestAdvance(t *testing.T) {
	from := domain.Coordinates{X: 0, Y: 0}

	tests := []struct {
		name string
		t    float64
		next domain.Customer
		want Leg
	}{
		{
			name: "early arrival waits",
			t:    0,
			next: domain.Customer{ID: 1, Coordinates: domain.Coordinates{X: 3, Y: 4}, ReadyTime: 20, DueTime: 30, ServiceTime: 10},
			want: Leg{Distance: 5, Arrival: 5, ServiceStart: 20, Wait: 15, Departure: 30},
		},
		{
			name: "arrival inside window",
			t:    22,
			next: domain.Customer{ID: 1, Coordinates: domain.Coordinates{X: 3, Y: 4}, ReadyTime: 20, DueTime: 30, ServiceTime: 10},
			want: Leg{Distance: 5, Arrival: 27, ServiceStart: 27, Departure: 37},
		},
		{
			name: "arrival at due time is feasible",
			t:    25,
			next: domain.Customer{ID: 1, Coordinates: domain.Coordinates{X: 3, Y: 4}, ReadyTime: 20, DueTime: 30, ServiceTime: 10},
			want: Leg{Distance: 5, Arrival: 30, ServiceStart: 30, Departure: 40},
		},
		{
			name: "arrival after due time is late",
			t:    26,
			next: domain.Customer{ID: 1, Coordinates: domain.Coordinates{X: 3, Y: 4}, ReadyTime: 20, DueTime: 30, ServiceTime: 10},
			want: Leg{Distance: 5, Arrival: 31, ServiceStart: 31, Departure: 41, Late: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.t, from, tt.next))
		})
	}
}
