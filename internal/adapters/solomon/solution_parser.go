package solomon

import (
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"solomon-validator/internal/domain"
)

var (
	// Vehicle lines, e.g. "Vehicle 3: Depot(0) -> Client(13) -> Client(17) -> Depot(0)".
	vehicleLineRe = regexp.MustCompile(`^(?:Vehicle|Veículo)\s+(\d+)\s*:(.*)$`)
	clientTokenRe = regexp.MustCompile(`(?:Client|Cliente)\((\d+)\)`)

	finalMarkers = []string{"FINAL ROUTES", "ROTAS FINAIS"}
)

// ParseSolution reads the routes of a solver report.
//
// When the report carries a final-routes section only that section is parsed;
// anything before it (such as the initial routes) is ignored. The section ends
// at the first "====" separator that follows a vehicle line. A vehicle line
// without clients yields an empty route that keeps its position.
func ParseSolution(r io.Reader) (domain.Solution, error) {
	lines, err := readLines(r)
	if err != nil {
		return domain.Solution{}, &ParseError{Source: "solution", Err: err}
	}

	start, hasFinal := 0, false
	if idx := findMarker(lines, 0, isFinalMarker); idx >= 0 {
		start, hasFinal = idx+1, true
	}

	var routes []domain.Route
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)

		if isSeparator(line) && len(routes) > 0 && hasFinal {
			break
		}

		route, ok := parseVehicleLine(line)
		if !ok {
			continue
		}
		routes = append(routes, route)
	}

	// Vehicle lines without clients are kept as empty routes, but a report
	// made only of them carries no solution.
	if !slices.ContainsFunc(routes, func(r domain.Route) bool { return !r.Empty() }) {
		if hasFinal {
			return domain.Solution{}, &ParseError{Source: "solution", Line: start, Err: ErrEmptyFinalSection}
		}
		return domain.Solution{}, &ParseError{Source: "solution", Err: ErrNoRoutes}
	}

	return domain.Solution{Routes: routes}, nil
}

func parseVehicleLine(line string) (domain.Route, bool) {
	m := vehicleLineRe.FindStringSubmatch(line)
	if m == nil {
		return domain.Route{}, false
	}

	vehicle, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Route{}, false
	}

	route := domain.Route{Vehicle: vehicle}
	for _, tok := range clientTokenRe.FindAllStringSubmatch(m[2], -1) {
		id, err := strconv.Atoi(tok[1])
		if err != nil || id == domain.DepotID {
			continue
		}
		route.Customers = append(route.Customers, id)
	}

	return route, true
}

func isFinalMarker(line string) bool {
	s := strings.ToUpper(line)
	for _, m := range finalMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func isSeparator(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "=") == ""
}
