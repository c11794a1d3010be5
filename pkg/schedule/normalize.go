package schedule

import (
	"fmt"
	"strings"
)

// Normalize flattens the route objects into one destination list.
// Route objects without an arrival or without schedule items are ignored,
// as are schedule items that are not objects or carry no departure time.
func (d *RouteObjectDocument) Normalize(origin string) *Timetable {
	t := newTimetable(origin, ShapeRouteObjects)

	for _, item := range d.Routes {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		arrival := CanonicalName(fieldRouteArrival.String(obj, ""))
		items := fieldRouteSchedule.List(obj)
		if arrival == "" || len(items) == 0 {
			continue
		}

		departure := CanonicalName(fieldRouteDeparture.String(obj, ""))
		if departure == "" {
			departure = t.Origin
		}

		dst := t.destination(arrival)
		for _, it := range items {
			sched, ok := it.(map[string]any)
			if !ok {
				continue
			}

			depTime := FormatDepartureTime(fieldItemTime.String(sched, ""))
			if depTime == "" {
				continue
			}

			info := fieldItemInfo.String(sched, "")
			dst.Records = append(dst.Records, Record{
				DepartureTime:   depTime,
				DurationMinutes: ExtractDurationMinutes(info),
				Operator:        OperatorName(info),
				Origin:          departure,
				Destination:     arrival,
				Fare:            strings.TrimSpace(fieldItemFare.String(sched, "")),
				SeatsLeft:       strings.TrimSpace(fieldItemSeats.String(sched, "")),
				Info:            info,
			})
		}
	}

	return t
}

// Normalize converts every destination list into records. A destination
// whose value or records are malformed keeps its error in Destination.Err
// and does not affect its siblings.
func (d *FlatDictDocument) Normalize(origin string) *Timetable {
	t := newTimetable(origin, ShapeFlatDict)

	for _, e := range d.Entries {
		name := CanonicalName(e.Destination)
		dst := t.destination(name)
		if dst.Err != nil {
			continue
		}

		list, ok := e.Value.([]any)
		if !ok {
			dst.Err = fmt.Errorf("%w (got %s)", ErrNotList, jsonKind(e.Value))
			continue
		}

		records, err := flatRecords(list, t.Origin, name)
		if err != nil {
			dst.Err = err
			dst.Records = nil
			continue
		}
		dst.Records = append(dst.Records, records...)
	}

	return t
}

func flatRecords(list []any, origin, destination string) ([]Record, error) {
	records := make([]Record, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: %w (got %s)", i, ErrNotObject, jsonKind(item))
		}

		info := fieldBusInfo.String(obj, "")
		duration, ok := fieldBusDuration.Int(obj)
		if !ok {
			duration = ExtractDurationMinutes(info)
		}
		if duration < 0 {
			duration = 0
		}

		records = append(records, Record{
			DepartureTime:   FormatDepartureTime(fieldBusTime.String(obj, "")),
			DurationMinutes: duration,
			Operator:        OperatorName(fieldBusOperator.String(obj, UnknownLabel)),
			Origin:          CanonicalName(fieldBusOrigin.String(obj, origin)),
			Destination:     destination,
			Fare:            strings.TrimSpace(fieldBusFare.String(obj, "")),
			SeatsLeft:       strings.TrimSpace(fieldBusSeats.String(obj, "")),
			Info:            info,
		})
	}
	return records, nil
}

func newTimetable(origin string, shape Shape) *Timetable {
	return &Timetable{Origin: CanonicalName(origin), Shape: shape}
}

// destination returns the entry for name, appending it on first use so
// the timetable keeps input order.
func (t *Timetable) destination(name string) *Destination {
	for i := range t.Destinations {
		if t.Destinations[i].Name == name {
			return &t.Destinations[i]
		}
	}
	t.Destinations = append(t.Destinations, Destination{Name: name})
	return &t.Destinations[len(t.Destinations)-1]
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}
