// Package report renders validation results for people and for tooling.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"solomon-validator/internal/domain"
)

const rule = "================================================================================"

// Header names the validated inputs.
type Header struct {
	Instance string
	Solution string
}

// WriteText writes the human-readable report: objective, per-route summary and
// every error and warning, followed by the verdict. With trace set, the
// chronology of each route is printed as well.
func WriteText(w io.Writer, h Header, res *domain.ValidationResult, trace bool) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", rule)
	ew.printf("SOLUTION VALIDATION\n")
	ew.printf("Instance: %s\n", h.Instance)
	ew.printf("Solution: %s\n", h.Solution)
	ew.printf("%s\n\n", rule)

	ew.printf("Total distance: %.2f\n", res.TotalDistance)
	ew.printf("Vehicles used: %d\n\n", res.VehiclesUsed)

	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Route\tVehicle\tCustomers\tDemand\tDistance\tReturn")
	for _, r := range res.Routes {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
			r.Index, r.Vehicle, customerStops(r), r.Demand, r.Distance, r.ReturnTime)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	if trace {
		for _, r := range res.Routes {
			ew.printf("\n")
			if err := WriteTrace(ew, r); err != nil {
				return err
			}
		}
	}

	ew.printf("\n%s\n", rule)
	if len(res.Errors) > 0 {
		ew.printf("INVALID SOLUTION: %d error(s)\n", len(res.Errors))
		for _, e := range res.Errors {
			ew.printf("  - %s\n", e)
		}
	} else {
		ew.printf("VALID SOLUTION\n")
	}
	if len(res.Warnings) > 0 {
		ew.printf("%d warning(s)\n", len(res.Warnings))
		for _, wn := range res.Warnings {
			ew.printf("  - %s\n", wn)
		}
	}
	ew.printf("%s\n", rule)

	if ew.err != nil {
		return fmt.Errorf("write text report: %w", ew.err)
	}
	return nil
}

// WriteTrace prints the step-by-step chronology of one route, ending with the depot return.
func WriteTrace(w io.Writer, r domain.RouteSummary) error {
	fmt.Fprintf(w, "Route %d (vehicle %d)\n", r.Index, r.Vehicle)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Step\tTo\tDist\tArrival\tWindow\tWait\tStart\tDeparture\tStatus")

	from := domain.DepotID
	for i, s := range r.Stops {
		step := fmt.Sprint(i + 1)
		if i == len(r.Stops)-1 && s.CustomerID == domain.DepotID {
			step = "END"
		}

		if s.Unknown {
			fmt.Fprintf(tw, "%s\t%d -> %d\t-\t-\t-\t-\t-\t-\tunknown customer\n", step, from, s.CustomerID)
			continue
		}

		fmt.Fprintf(tw, "%s\t%d -> %d\t%.2f\t%.2f\t[%s, %s]\t%s\t%.2f\t%.2f\t%s\n",
			step, from, s.CustomerID, s.Distance, s.Arrival,
			num(s.ReadyTime), num(s.DueTime), wait(s.Wait), s.ServiceStart, s.Departure, status(s))
		from = s.CustomerID
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write route trace: %w", err)
	}
	return nil
}

func status(s domain.StopTrace) string {
	switch {
	case s.Late && s.CustomerID == domain.DepotID:
		return "late return"
	case s.Late:
		return "VIOLATION"
	case s.Wait > 0:
		return "wait"
	default:
		return "ok"
	}
}

func customerStops(r domain.RouteSummary) int {
	n := 0
	for _, s := range r.Stops {
		if s.CustomerID != domain.DepotID {
			n++
		}
	}
	return n
}

func wait(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

// num prints integral window bounds without decimals, as the instance files do.
func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
