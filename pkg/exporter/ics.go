package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/render"
	"github.com/Hyunwoo0815/bus2/pkg/schedule"

	ics "github.com/arran4/golang-ical"
)

// unknownDuration is the event length used when a departure has no travel time
const unknownDuration = 30 * time.Minute

// GenerateICS writes a calendar with one daily recurring event per departure
// of a route, starting on day in loc.
func GenerateICS(origin, destination string, records []schedule.Record, day time.Time, loc *time.Location, w io.Writer) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(fmt.Sprintf("%s → %s 시외버스", origin, destination))

	date := day.In(loc).Format("2006-01-02")
	now := time.Now()

	for i, rec := range schedule.ValidRecords(records) {
		startTime, err := time.ParseInLocation("2006-01-02 15:04", date+" "+rec.DepartureTime, loc)
		if err != nil {
			continue // Skip times that are not HH:MM
		}

		length := time.Duration(rec.DurationMinutes) * time.Minute
		if length <= 0 {
			length = unknownDuration
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%d@bus2", startTime.UTC().Format("20060102T150405Z"), i))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(startTime)
		event.SetEndAt(startTime.Add(length))
		event.AddProperty(ics.ComponentPropertyRrule, "FREQ=DAILY")
		event.SetSummary(fmt.Sprintf("%s → %s", origin, destination))
		event.SetLocation(origin + " 터미널")

		lines := []string{
			"운수사: " + rec.OperatorLabel(),
			"소요시간: " + render.FormatDuration(rec.DurationMinutes),
		}
		if rec.Fare != "" {
			lines = append(lines, "요금: "+rec.Fare)
		}
		event.SetDescription(strings.Join(lines, "\n"))
	}

	return cal.SerializeTo(w)
}
