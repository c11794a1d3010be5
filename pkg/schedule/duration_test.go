package schedule

import (
	"fmt"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestExtractDurationMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"경남여객(일반)1:10 소요", 70},
		{"0:45 소요", 45},
		{"동양고속(우등) 2:05소요", 125},
		{"1시간 30분", 90},
		{"2시간", 120},
		{"45분", 45},
		{"약 3시간 5분 소요", 185},
		{"경남여객(일반)", 0},
		{"", 0},
		{"   ", 0},
		// The "소요" form wins over the Korean units
		{"1:10 소요 (2시간)", 70},
	}

	for _, tc := range tests {
		if got := ExtractDurationMinutes(tc.in); got != tc.want {
			t.Errorf("ExtractDurationMinutes(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestExtractDurationMinutes_HourMinuteGrid(t *testing.T) {
	for h := 0; h < 6; h++ {
		for m := 0; m < 60; m += 7 {
			text := fmt.Sprintf("%d:%02d 소요", h, m)
			if got := ExtractDurationMinutes(text); got != h*60+m {
				t.Errorf("ExtractDurationMinutes(%q): expected %d, got %d", text, h*60+m, got)
			}
		}
	}
}

func TestFormatDepartureTime(t *testing.T) {
	tests := map[string]string{
		"0745":    "07:45",
		"07:45":   "07:45",
		" 2310 ":  "23:10",
		"074500":  "07:45",
		"745":     "745",
		"":        "",
		"오전7시45분": "오전7시45분",
	}
	for in, want := range tests {
		if got := FormatDepartureTime(in); got != want {
			t.Errorf("FormatDepartureTime(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestOperatorName(t *testing.T) {
	tests := map[string]string{
		"경남여객(일반)1:10 소요": "경남여객",
		"금호고속 (우등)":       "금호고속",
		"동부고속":            "동부고속",
		"(일반)":            "",
		"정보 없음":           "",
		"":                "",
	}
	for in, want := range tests {
		if got := OperatorName(in); got != want {
			t.Errorf("OperatorName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestOriginFromFilename(t *testing.T) {
	if got := OriginFromFilename("data/인천_schedules.json"); got != "인천" {
		t.Errorf("expected 인천, got %s", got)
	}

	// Decomposed jamo, as macOS filesystems return it
	nfd := norm.NFD.String("인천")
	if nfd == "인천" {
		t.Fatalf("expected NFD form to differ from NFC")
	}
	if got := OriginFromFilename(nfd + "_schedules.json"); got != "인천" {
		t.Errorf("expected NFD origin to be normalized to 인천, got %q", got)
	}

	if !IsScheduleFile("x/부산_schedules.json") || IsScheduleFile("x/route.json") {
		t.Errorf("IsScheduleFile misclassified a path")
	}
}
