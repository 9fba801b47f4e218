package solomon

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"solomon-validator/internal/domain"
)

// fleetLineFallback is the 0-based line index of the fleet line in the
// canonical layout, used only when the file carries no VEHICLE marker.
const fleetLineFallback = 4

// ParseInstance reads a benchmark instance in the Solomon layout.
//
// Sections are located by their markers (VEHICLE, CUSTOMER / CUST NO.) rather
// than by fixed line numbers. Lines that are not 7 numeric fields inside the
// customer section are skipped.
func ParseInstance(r io.Reader) (*domain.Instance, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, &ParseError{Source: "instance", Err: err}
	}

	fleetIdx, numVehicles, capacity, err := findFleet(lines)
	if err != nil {
		return nil, err
	}

	start := fleetIdx + 1
	if idx := findMarker(lines, fleetIdx+1, isCustomerMarker); idx >= 0 {
		start = idx + 1
	}

	customers := make([]domain.Customer, 0, 101)
	for _, line := range lines[start:] {
		c, ok := parseCustomer(line)
		if !ok {
			continue
		}
		customers = append(customers, c)
	}

	inst, err := domain.NewInstance(instanceName(lines), numVehicles, capacity, customers)
	if err != nil {
		return nil, &ParseError{Source: "instance", Err: err}
	}

	return inst, nil
}

// readLines splits the whole input into lines. Solver reports may carry very
// long free-text lines, so there is no per-line limit.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

func findFleet(lines []string) (int, int, int, error) {
	if vi := findMarker(lines, 0, isVehicleMarker); vi >= 0 {
		for i := vi + 1; i < len(lines); i++ {
			if isCustomerMarker(lines[i]) {
				break
			}
			if v, c, ok := parseFleet(lines[i]); ok {
				return i, v, c, nil
			}
		}
		return 0, 0, 0, &ParseError{Source: "instance", Line: vi + 1, Err: ErrFleetLine}
	}

	if len(lines) <= fleetLineFallback {
		return 0, 0, 0, &ParseError{Source: "instance", Err: ErrFleetLine}
	}
	v, c, ok := parseFleet(lines[fleetLineFallback])
	if !ok {
		return 0, 0, 0, &ParseError{Source: "instance", Line: fleetLineFallback + 1, Err: ErrFleetLine}
	}
	return fleetLineFallback, v, c, nil
}

// parseFleet reads "num_vehicles vehicle_capacity"; trailing fields are decorative.
func parseFleet(line string) (int, int, bool) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return 0, 0, false
	}
	v, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, false
	}
	c, err := strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, false
	}
	return v, c, true
}

func parseCustomer(line string) (domain.Customer, bool) {
	f := strings.Fields(line)
	if len(f) < 7 {
		return domain.Customer{}, false
	}

	id, ok := parseInt(f[0])
	if !ok {
		return domain.Customer{}, false
	}
	demand, ok := parseInt(f[3])
	if !ok {
		return domain.Customer{}, false
	}

	var nums [5]float64
	for i, j := range []int{1, 2, 4, 5, 6} {
		v, err := strconv.ParseFloat(f[j], 64)
		if err != nil {
			return domain.Customer{}, false
		}
		nums[i] = v
	}

	return domain.Customer{
		ID:          id,
		Coordinates: domain.Coordinates{X: nums[0], Y: nums[1]},
		Demand:      demand,
		ReadyTime:   nums[2],
		DueTime:     nums[3],
		ServiceTime: nums[4],
	}, true
}

// parseInt accepts integral values written either as "10" or "10.0".
func parseInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

func findMarker(lines []string, from int, match func(string) bool) int {
	for i := from; i < len(lines); i++ {
		if match(lines[i]) {
			return i
		}
	}
	return -1
}

func isVehicleMarker(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "VEHICLE")
}

func isCustomerMarker(line string) bool {
	s := strings.ToUpper(strings.TrimSpace(line))
	return s == "CUSTOMER" || strings.HasPrefix(s, "CUST NO.")
}

func instanceName(lines []string) string {
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			return s
		}
	}
	return ""
}
