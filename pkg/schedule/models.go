package schedule

import "errors"

// UnknownLabel is shown wherever an operator or duration is missing
const UnknownLabel = "정보 없음"

var (
	// ErrUnknownShape is returned for documents that are neither a route list nor a destination map
	ErrUnknownShape = errors.New("unsupported schedule document shape")
	// ErrNotList marks a flat-dict destination whose value is not a list
	ErrNotList = errors.New("destination value is not a list")
	// ErrNotObject marks a flat-dict record that is not a JSON object
	ErrNotObject = errors.New("bus record is not an object")
)

// Shape identifies which upstream layout a schedule document uses
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeRouteObjects
	ShapeFlatDict
)

func (s Shape) String() string {
	switch s {
	case ShapeRouteObjects:
		return "route-objects"
	case ShapeFlatDict:
		return "flat-dict"
	default:
		return "unknown"
	}
}

// Record is a single bus departure in canonical form
type Record struct {
	DepartureTime   string // "07:45"
	DurationMinutes int
	Operator        string // empty when unknown
	Origin          string
	Destination     string // original characters, never sanitized
	Fare            string
	SeatsLeft       string
	Info            string // raw 차편정보 text, e.g. "경남여객(일반)1:10 소요"
}

// OperatorLabel returns the operator name or the unknown label
func (r Record) OperatorLabel() string {
	if r.Operator == "" {
		return UnknownLabel
	}
	return r.Operator
}

// Destination groups the records of one arrival terminal
type Destination struct {
	Name    string
	Records []Record
	// Err is set when the records for this destination could not be extracted
	Err error
}

// Timetable is the normalized content of one origin's schedule file
type Timetable struct {
	Origin       string
	Shape        Shape
	Destinations []Destination
}

// Lookup returns the destination with the given name
func (t *Timetable) Lookup(name string) (Destination, bool) {
	name = CanonicalName(name)
	for _, d := range t.Destinations {
		if d.Name == name {
			return d, true
		}
	}
	return Destination{}, false
}

// RouteAggregate holds the per-route statistics shown on a timetable page
type RouteAggregate struct {
	BusCount               int
	FirstDeparture         string
	LastDeparture          string
	AverageDurationMinutes int
	Operators              []string
}

// Document is a decoded schedule file in one of the supported shapes
type Document interface {
	Shape() Shape
	Normalize(origin string) *Timetable
}
