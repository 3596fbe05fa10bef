package quiz

import (
	"encoding/json"
	"sort"
)

// The generic correct-answer value is stored as raw JSON. Legacy records
// show up as a bare scalar, an array of scalars, or a map of keyed scalars;
// flatten normalizes all three into a flat scalar sequence so the per-type
// decoders only ever deal with one shape.

type scalarKind int

const (
	scalarInvalid scalarKind = iota
	scalarString
	scalarNumber
	scalarBool
	scalarRecord
)

// tolerance record carried by numeric and scale answers.
type valueTolerance struct {
	Value     float64 `json:"value"`
	Tolerance float64 `json:"tolerance"`
}

type scalar struct {
	kind scalarKind
	str  string
	num  float64
	b    bool
	rec  valueTolerance
}

func flatten(raw json.RawMessage) []scalar {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case []interface{}:
		out := make([]scalar, 0, len(t))
		for _, e := range t {
			out = append(out, toScalar(e))
		}
		return out
	case map[string]interface{}:
		if _, ok := t["value"]; ok {
			return []scalar{toScalar(t)}
		}
		// keyed scalars: flatten values in key order so the result is stable
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]scalar, 0, len(keys))
		for _, k := range keys {
			out = append(out, toScalar(t[k]))
		}
		return out
	case nil:
		return nil
	default:
		return []scalar{toScalar(v)}
	}
}

func toScalar(v interface{}) scalar {
	switch t := v.(type) {
	case string:
		return scalar{kind: scalarString, str: t}
	case float64:
		return scalar{kind: scalarNumber, num: t}
	case bool:
		return scalar{kind: scalarBool, b: t}
	case map[string]interface{}:
		val, ok := t["value"].(float64)
		if !ok {
			return scalar{kind: scalarInvalid}
		}
		tol, _ := t["tolerance"].(float64) // missing tolerance degrades to 0
		return scalar{kind: scalarRecord, rec: valueTolerance{Value: val, Tolerance: tol}}
	default:
		return scalar{kind: scalarInvalid}
	}
}
