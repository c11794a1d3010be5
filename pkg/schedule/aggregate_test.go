package schedule

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestAggregate_Empty(t *testing.T) {
	if _, ok := Aggregate(nil); ok {
		t.Errorf("expected exclude signal for no records")
	}

	blank := []Record{{DepartureTime: ""}, {DepartureTime: "   "}}
	if _, ok := Aggregate(blank); ok {
		t.Errorf("expected exclude signal when every record has a blank time")
	}
}

func TestAggregate_Stats(t *testing.T) {
	records := []Record{
		{DepartureTime: "14:30", DurationMinutes: 100, Operator: "금호고속"},
		{DepartureTime: "", DurationMinutes: 999, Operator: "무효"},
		{DepartureTime: "06:10", DurationMinutes: 90, Operator: "동부고속"},
		{DepartureTime: "21:55", DurationMinutes: 0},
		{DepartureTime: "09:00", DurationMinutes: 95, Operator: "금호고속"},
	}

	agg, ok := Aggregate(records)
	if !ok {
		t.Fatalf("expected aggregate")
	}

	if agg.BusCount != 4 {
		t.Errorf("expected 4 valid buses, got %d", agg.BusCount)
	}
	if agg.FirstDeparture != "06:10" {
		t.Errorf("expected first 06:10, got %s", agg.FirstDeparture)
	}
	if agg.LastDeparture != "21:55" {
		t.Errorf("expected last 21:55, got %s", agg.LastDeparture)
	}
	// (100+90+0+95)/4 = 71
	if agg.AverageDurationMinutes != 71 {
		t.Errorf("expected average 71, got %d", agg.AverageDurationMinutes)
	}
	if !reflect.DeepEqual(agg.Operators, []string{"금호고속", "동부고속"}) {
		t.Errorf("expected sorted unique operators, got %v", agg.Operators)
	}
}

func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		var records []Record
		valid, sum := 0, 0
		for i := 0; i < n; i++ {
			r := Record{DurationMinutes: rng.Intn(400)}
			if rng.Intn(4) != 0 {
				r.DepartureTime = FormatDepartureTime(twoDigits(rng.Intn(24)) + twoDigits(rng.Intn(60)))
				valid++
				sum += r.DurationMinutes
			}
			records = append(records, r)
		}

		agg, ok := Aggregate(records)
		if valid == 0 {
			if ok {
				t.Fatalf("round %d: expected exclude signal", round)
			}
			continue
		}
		if !ok {
			t.Fatalf("round %d: expected aggregate for %d valid records", round, valid)
		}
		if agg.BusCount != valid {
			t.Errorf("round %d: expected count %d, got %d", round, valid, agg.BusCount)
		}
		if agg.FirstDeparture > agg.LastDeparture {
			t.Errorf("round %d: first %s after last %s", round, agg.FirstDeparture, agg.LastDeparture)
		}
		if agg.AverageDurationMinutes != sum/valid {
			t.Errorf("round %d: expected average %d, got %d", round, sum/valid, agg.AverageDurationMinutes)
		}
	}
}

func TestSortByDeparture(t *testing.T) {
	records := []Record{{DepartureTime: "12:00"}, {DepartureTime: "06:30"}, {DepartureTime: "09:15"}}
	SortByDeparture(records)

	if records[0].DepartureTime != "06:30" || records[2].DepartureTime != "12:00" {
		t.Errorf("records not sorted by departure: %+v", records)
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
