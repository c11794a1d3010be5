package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "경남여객(일반)1:10 소요"
	elapsedPattern = regexp.MustCompile(`(\d+):(\d+)\s*소요`)
	// "1시간 30분", "2시간", "45분"
	hoursPattern   = regexp.MustCompile(`(\d+)시간`)
	minutesPattern = regexp.MustCompile(`(\d+)분`)
)

// ExtractDurationMinutes reads a travel time out of free text.
// It tries the "H:MM 소요" form first, then "N시간 M분" with either part optional.
func ExtractDurationMinutes(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	if m := elapsedPattern.FindStringSubmatch(text); m != nil {
		return atoi(m[1])*60 + atoi(m[2])
	}

	hours, minutes := 0, 0
	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		hours = atoi(m[1])
	}
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		minutes = atoi(m[1])
	}
	return hours*60 + minutes
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
