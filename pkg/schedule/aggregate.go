package schedule

import (
	"sort"
	"strings"
)

// ValidRecords drops records without a departure time
func ValidRecords(records []Record) []Record {
	var valid []Record
	for _, r := range records {
		if strings.TrimSpace(r.DepartureTime) != "" {
			valid = append(valid, r)
		}
	}
	return valid
}

// Aggregate computes the route statistics over the valid records.
// It returns false when nothing valid is left, in which case the route
// must not be rendered.
func Aggregate(records []Record) (RouteAggregate, bool) {
	valid := ValidRecords(records)
	if len(valid) == 0 {
		return RouteAggregate{}, false
	}

	agg := RouteAggregate{
		BusCount:       len(valid),
		FirstDeparture: valid[0].DepartureTime,
		LastDeparture:  valid[0].DepartureTime,
	}

	total := 0
	seen := make(map[string]bool)
	for _, r := range valid {
		// Zero-padded HH:MM sorts lexicographically
		if r.DepartureTime < agg.FirstDeparture {
			agg.FirstDeparture = r.DepartureTime
		}
		if r.DepartureTime > agg.LastDeparture {
			agg.LastDeparture = r.DepartureTime
		}
		total += r.DurationMinutes

		if r.Operator != "" && !seen[r.Operator] {
			seen[r.Operator] = true
			agg.Operators = append(agg.Operators, r.Operator)
		}
	}

	agg.AverageDurationMinutes = total / len(valid)
	sort.Strings(agg.Operators)

	return agg, true
}

// SortByDeparture orders records by departure time, keeping input order for ties
func SortByDeparture(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DepartureTime < records[j].DepartureTime
	})
}
