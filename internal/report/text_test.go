package report

import (
	"bytes"
	"errors"
	"testing"

	"solomon-validator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.ValidationResult {
	res := &domain.ValidationResult{
		TotalDistance: 37.3630,
		VehiclesUsed:  1,
		Routes: []domain.RouteSummary{{
			Index:      1,
			Vehicle:    4,
			Demand:     10,
			Distance:   37.3630,
			ReturnTime: 1020.68,
			Stops: []domain.StopTrace{
				{CustomerID: 1, Distance: 18.68, Arrival: 18.68, ReadyTime: 912, DueTime: 967, Wait: 893.32, ServiceStart: 912, Departure: 1002},
				{CustomerID: 0, Distance: 18.68, Arrival: 1020.68, ReadyTime: 0, DueTime: 1010, ServiceStart: 1020.68, Departure: 1020.68, Late: true},
			},
		}},
	}
	res.Add(domain.Issue{Kind: domain.IssueLateReturn, Severity: domain.SeverityWarning, Message: "route 1 returns to the depot outside its time window"})
	return res
}

func TestWriteTextValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Header{Instance: "C101", Solution: "exec01.txt"}, sampleResult(), false))

	out := buf.String()
	assert.Contains(t, out, "Instance: C101")
	assert.Contains(t, out, "Total distance: 37.36")
	assert.Contains(t, out, "Vehicles used: 1")
	assert.Contains(t, out, "VALID SOLUTION")
	assert.Contains(t, out, "1 warning(s)")
	assert.NotContains(t, out, "Step")
}

func TestWriteTextInvalidWithTrace(t *testing.T) {
	res := sampleResult()
	res.Add(domain.Issue{Kind: domain.IssueMissingCustomers, Severity: domain.SeverityError, Message: "1 customers not visited: [2]"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Header{Instance: "C101", Solution: "exec02.txt"}, res, true))

	out := buf.String()
	assert.Contains(t, out, "INVALID SOLUTION: 1 error(s)")
	assert.Contains(t, out, "  - 1 customers not visited: [2]")
	assert.Contains(t, out, "Route 1 (vehicle 4)")
	assert.Contains(t, out, "[912, 967]")
	assert.Contains(t, out, "late return")
	assert.Contains(t, out, "END")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTextPropagatesWriteErrors(t *testing.T) {
	err := WriteText(failingWriter{}, Header{}, sampleResult(), true)
	assert.ErrorContains(t, err, "disk full")
}
