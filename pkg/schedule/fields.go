package schedule

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field is an ordered list of keys that may carry the same logical value.
// The first key with a non-blank value wins.
type Field []string

// Upstream field names. Keep every key spelling here so the rest of the
// package only deals with Record.
var (
	fieldRouteDeparture = Field{"출발지", "departure"}
	fieldRouteArrival   = Field{"도착지", "arrival"}
	fieldRouteSchedule  = Field{"스케줄", "schedule"}

	fieldItemTime  = Field{"출발시각", "departure_time"}
	fieldItemInfo  = Field{"차편정보", "fare_info_text"}
	fieldItemFare  = Field{"어른요금", "fare"}
	fieldItemSeats = Field{"잔여좌석", "seats_left"}

	fieldBusTime     = Field{"TIM_TIM", "출발시각", "departure_time"}
	fieldBusOperator = Field{"COR_NAM", "차편정보", "fare_info_text"}
	fieldBusInfo     = Field{"차편정보", "fare_info_text"}
	fieldBusDuration = Field{"LIN_TIM"}
	fieldBusOrigin   = Field{"DEP_PLN", "출발지", "departure"}
	fieldBusFare     = Field{"어른요금", "fare"}
	fieldBusSeats    = Field{"잔여좌석", "seats_left"}
)

// String returns the first non-blank value as text, or def.
func (f Field) String(obj map[string]any, def string) string {
	for _, key := range f {
		if s, ok := scalarText(obj[key]); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

// Int returns the first value that reads as a whole number.
func (f Field) Int(obj map[string]any) (int, bool) {
	for _, key := range f {
		s, ok := scalarText(obj[key])
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if fl, err := strconv.ParseFloat(s, 64); err == nil {
			return int(fl), true
		}
	}
	return 0, false
}

// List returns the first value that is a JSON array.
func (f Field) List(obj map[string]any) []any {
	for _, key := range f {
		if list, ok := obj[key].([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
