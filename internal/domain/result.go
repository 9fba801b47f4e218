package domain

import "encoding/json"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type IssueKind string

const (
	IssueDuplicateVisit   IssueKind = "duplicate_visit"
	IssueMissingCustomers IssueKind = "missing_customers"
	IssueCapacityExceeded IssueKind = "capacity_exceeded"
	IssueTimeWindow       IssueKind = "time_window"
	IssueUnknownCustomer  IssueKind = "unknown_customer"
	IssueLateReturn       IssueKind = "late_return"
)

// Issue is the machine-readable form of one reported error or warning.
// Route is 1-based; zero means the issue is not tied to a single route.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Route      int       `json:"route"`
	CustomerID int       `json:"customer_id"`
	Visits     int       `json:"visits"`
	Missing    []int     `json:"missing"`
	Demand     int       `json:"demand"`
	Capacity   int       `json:"capacity"`
	Overflow   int       `json:"overflow"`
	Arrival    float64   `json:"arrival"`
	Deadline   float64   `json:"deadline"`
	Delay      float64   `json:"delay"`
}

// issueJSON is the wire form of an Issue. Only the fields that apply to the
// kind are set, so a zero value (customer 0, arrival 0) is still emitted.
type issueJSON struct {
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Route      *int      `json:"route,omitempty"`
	CustomerID *int      `json:"customer_id,omitempty"`
	Visits     *int      `json:"visits,omitempty"`
	Missing    []int     `json:"missing,omitempty"`
	Demand     *int      `json:"demand,omitempty"`
	Capacity   *int      `json:"capacity,omitempty"`
	Overflow   *int      `json:"overflow,omitempty"`
	Arrival    *float64  `json:"arrival,omitempty"`
	Deadline   *float64  `json:"deadline,omitempty"`
	Delay      *float64  `json:"delay,omitempty"`
}

func (i Issue) MarshalJSON() ([]byte, error) {
	out := issueJSON{Kind: i.Kind, Severity: i.Severity, Message: i.Message}

	switch i.Kind {
	case IssueDuplicateVisit:
		out.CustomerID, out.Visits = &i.CustomerID, &i.Visits
	case IssueMissingCustomers:
		out.Missing = i.Missing
		if out.Missing == nil {
			out.Missing = []int{}
		}
	case IssueCapacityExceeded:
		out.Route, out.Demand, out.Capacity, out.Overflow = &i.Route, &i.Demand, &i.Capacity, &i.Overflow
	case IssueUnknownCustomer:
		out.Route, out.CustomerID = &i.Route, &i.CustomerID
	case IssueTimeWindow, IssueLateReturn:
		out.Route, out.CustomerID = &i.Route, &i.CustomerID
		out.Arrival, out.Deadline, out.Delay = &i.Arrival, &i.Deadline, &i.Delay
	default:
		// Unknown kinds carry everything.
		out.Route, out.CustomerID, out.Visits, out.Missing = &i.Route, &i.CustomerID, &i.Visits, i.Missing
		out.Demand, out.Capacity, out.Overflow = &i.Demand, &i.Capacity, &i.Overflow
		out.Arrival, out.Deadline, out.Delay = &i.Arrival, &i.Deadline, &i.Delay
	}

	return json.Marshal(out)
}

// StopTrace records the chronology of one visit, including the return to the depot.
type StopTrace struct {
	CustomerID   int     `json:"customer_id"`
	Distance     float64 `json:"distance"`
	Arrival      float64 `json:"arrival"`
	ReadyTime    float64 `json:"ready_time"`
	DueTime      float64 `json:"due_time"`
	Wait         float64 `json:"wait"`
	ServiceStart float64 `json:"service_start"`
	Departure    float64 `json:"departure"`
	Late         bool    `json:"late,omitempty"`
	Unknown      bool    `json:"unknown,omitempty"`
}

type RouteSummary struct {
	Index      int         `json:"index"`
	Vehicle    int         `json:"vehicle"`
	Demand     int         `json:"demand"`
	Distance   float64     `json:"distance"`
	ReturnTime float64     `json:"return_time"`
	Stops      []StopTrace `json:"stops"`
}

// ValidationResult is produced fresh by every validation.
// A solution is valid if and only if Errors is empty; warnings never change the verdict.
type ValidationResult struct {
	Errors        []string       `json:"errors"`
	Warnings      []string       `json:"warnings"`
	Issues        []Issue        `json:"issues"`
	Routes        []RouteSummary `json:"routes"`
	TotalDistance float64        `json:"total_distance"`
	VehiclesUsed  int            `json:"vehicles_used"`
}

func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Add records an issue and its message in the matching severity list.
func (r *ValidationResult) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityWarning {
		r.Warnings = append(r.Warnings, issue.Message)
		return
	}
	r.Errors = append(r.Errors, issue.Message)
}

// IssuesOf returns the issues of a single kind in report order.
func (r *ValidationResult) IssuesOf(kind IssueKind) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}
