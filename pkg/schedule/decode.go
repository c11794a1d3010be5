package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// RouteObjectDocument is the `[{"출발지", "도착지", "스케줄": [...]}, ...]` layout
type RouteObjectDocument struct {
	Routes []any
}

// Shape implements Document
func (d *RouteObjectDocument) Shape() Shape { return ShapeRouteObjects }

// FlatDictDocument is the `{"destination": [{"TIM_TIM", ...}, ...]}` layout.
// Entries keep the key order of the source file.
type FlatDictDocument struct {
	Entries []FlatDictEntry
}

// FlatDictEntry is one destination key and its undecoded value
type FlatDictEntry struct {
	Destination string
	Value       any
}

// Shape implements Document
func (d *FlatDictDocument) Shape() Shape { return ShapeFlatDict }

// Decode reads a schedule file and resolves its shape once.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: top-level %T", ErrUnknownShape, tok)
	}

	var doc Document
	switch delim {
	case '[':
		doc, err = decodeRouteObjects(dec)
	case '{':
		doc, err = decodeFlatDict(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrUnknownShape, delim.String())
	}
	if err != nil {
		return nil, err
	}

	// Trailing garbage after the top-level value makes the file invalid
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse schedule JSON: trailing data after top-level value")
	}

	return doc, nil
}

func decodeRouteObjects(dec *json.Decoder) (*RouteObjectDocument, error) {
	doc := &RouteObjectDocument{}
	for dec.More() {
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
		}
		doc.Routes = append(doc.Routes, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}

	if DetectShape(doc.Routes) != ShapeRouteObjects {
		return nil, fmt.Errorf("%w: list without route objects", ErrUnknownShape)
	}
	return doc, nil
}

func decodeFlatDict(dec *json.Decoder) (*FlatDictDocument, error) {
	doc := &FlatDictDocument{}
	lists := 0
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
		}
		if _, ok := v.([]any); ok {
			lists++
		}
		doc.Entries = append(doc.Entries, FlatDictEntry{Destination: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}

	// A mapping qualifies as flat-dict only when its values are sequences
	if len(doc.Entries) > 0 && lists == 0 {
		return nil, fmt.Errorf("%w: object without destination lists", ErrUnknownShape)
	}
	return doc, nil
}

// DetectShape classifies an already decoded JSON value.
func DetectShape(v any) Shape {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if hasAny(obj, fieldRouteDeparture, fieldRouteArrival, fieldRouteSchedule) {
				return ShapeRouteObjects
			}
		}
		if len(val) == 0 {
			return ShapeRouteObjects
		}
		return ShapeUnknown
	case map[string]any:
		if len(val) == 0 {
			return ShapeFlatDict
		}
		for _, item := range val {
			if _, ok := item.([]any); ok {
				return ShapeFlatDict
			}
		}
		return ShapeUnknown
	default:
		return ShapeUnknown
	}
}

func hasAny(obj map[string]any, fields ...Field) bool {
	for _, f := range fields {
		for _, key := range f {
			if _, ok := obj[key]; ok {
				return true
			}
		}
	}
	return false
}
