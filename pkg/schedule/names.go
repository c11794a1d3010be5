package schedule

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// scheduleSuffix is the filename suffix of per-origin schedule files
const scheduleSuffix = "_schedules.json"

// FormatDepartureTime turns "0745" into "07:45". Values that already carry
// a colon or do not start with four digits are returned trimmed.
func FormatDepartureTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ":") || len(raw) < 4 {
		return raw
	}
	for i := 0; i < 4; i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return raw
		}
	}
	return raw[:2] + ":" + raw[2:4]
}

// OperatorName truncates an info text at the first parenthesis.
// "경남여객(일반)1:10 소요" -> "경남여객"
func OperatorName(text string) string {
	if i := strings.Index(text, "("); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == UnknownLabel {
		return ""
	}
	return text
}

// CanonicalName trims a terminal name and brings it to NFC so names read
// from NFD filenames match names read from JSON.
func CanonicalName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// OriginFromFilename derives the origin terminal from a schedule file path.
func OriginFromFilename(path string) string {
	return CanonicalName(strings.TrimSuffix(filepath.Base(path), scheduleSuffix))
}

// IsScheduleFile reports whether a path names a per-origin schedule file
func IsScheduleFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), scheduleSuffix)
}
