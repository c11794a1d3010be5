package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/schedule"
)

func TestGenerateICS(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	records := []schedule.Record{
		{DepartureTime: "07:45", DurationMinutes: 70, Operator: "경남여객", Fare: "5,600원"},
		{DepartureTime: "21:10"},
		{DepartureTime: ""},
		{DepartureTime: "오전"},
	}
	day := time.Date(2025, 3, 1, 12, 0, 0, 0, kst)

	var buf bytes.Buffer
	err := GenerateICS("인천", "신갈", records, day, kst, &buf)
	if err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if strings.Count(output, "BEGIN:VEVENT") != 2 {
		t.Errorf("Expected 2 events for the 2 valid departures, got: \n%s", output)
	}

	if !strings.Contains(output, "SUMMARY:인천 → 신갈") {
		t.Errorf("Expected ICS to contain route summary, got: \n%s", output)
	}

	if !strings.Contains(output, "RRULE:FREQ=DAILY") {
		t.Errorf("Expected events to repeat daily")
	}

	// 01-Mar-2025 07:45 KST is 22:45 UTC the day before.
	if !strings.Contains(output, "DTSTART:20250228T224500Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}
	if !strings.Contains(output, "DTEND:20250228T235500Z") {
		t.Errorf("Expected end time after 70 minutes, got: \n%s", output)
	}

	// Unknown travel time falls back to a 30 minute event
	if !strings.Contains(output, "DTEND:20250301T124000Z") {
		t.Errorf("Expected placeholder duration for the 21:10 departure, got: \n%s", output)
	}
}
