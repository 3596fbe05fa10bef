package quiz

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Answer is the typed in-memory form of a correct answer or a submitted
// answer. Exactly one group of fields is meaningful per Type.
type Answer struct {
	Type QuestionType

	// Conforms reports whether the generic value matched the shape the
	// type expects. Decode never fails; on malformed input it degrades to
	// the type's zero value and clears this flag. The validator scores
	// non-conforming submissions as incorrect.
	Conforms bool

	OptionIndex int      // multiple_choice; -1 when nothing is selected
	OptionSet   []int    // multi_select; sorted ascending, no duplicates
	Truth       bool     // true_false
	Accepted    []string // short_answer; trimmed, non-empty
	Value       float64  // numeric, scale
	Tolerance   float64
}

// DecodeAnswer interprets the generic stored value for the given type.
// Malformed or legacy data degrades to the type's zero value so read paths
// never crash on a corrupt record. Option-backed types resolve strings
// against options verbatim.
func DecodeAnswer(t QuestionType, options []string, raw json.RawMessage) Answer {
	a := Answer{Type: t, OptionIndex: -1}
	items := flatten(raw)

	switch t {
	case TypeMultipleChoice:
		if len(items) == 1 && items[0].kind == scalarString {
			if i := indexOfOption(options, items[0].str); i >= 0 {
				a.OptionIndex = i
				a.Conforms = true
			}
		}

	case TypeMultiSelect:
		conforms := len(items) > 0
		seen := make(map[int]bool)
		for _, it := range items {
			if it.kind != scalarString {
				conforms = false
				continue
			}
			i := indexOfOption(options, it.str)
			if i < 0 {
				conforms = false
				continue
			}
			seen[i] = true
		}
		for i := range seen {
			a.OptionSet = append(a.OptionSet, i)
		}
		sort.Ints(a.OptionSet)
		a.Conforms = conforms

	case TypeTrueFalse:
		// a string "true" does not conform; grading treats it as wrong
		if len(items) == 1 && items[0].kind == scalarBool {
			a.Truth = items[0].b
			a.Conforms = true
		}

	case TypeShortAnswer:
		for _, it := range items {
			if it.kind != scalarString {
				continue
			}
			if s := strings.TrimSpace(it.str); s != "" {
				a.Accepted = append(a.Accepted, s)
			}
		}
		a.Conforms = len(a.Accepted) > 0

	case TypeNumeric, TypeScale:
		if len(items) == 1 {
			switch items[0].kind {
			case scalarRecord:
				a.Value = items[0].rec.Value
				a.Tolerance = items[0].rec.Tolerance
				a.Conforms = true
			case scalarNumber:
				// bare submitted number: tolerance lives on the key side
				a.Value = items[0].num
				a.Conforms = true
			}
		}
	}
	return a
}

// EncodeAnswer validates the typed answer and produces the generic value
// persisted in correctAnswers. Unlike decode it fails rather than coerce:
// encoding happens at authoring-submit time, where correctness matters
// more than resilience. For option-backed types it also returns the
// canonical option list (trimmed, blanks dropped) that must be persisted
// alongside the encoded value.
func EncodeAnswer(t QuestionType, options []string, a Answer) (json.RawMessage, []string, *Error) {
	switch t {
	case TypeMultipleChoice:
		canon, remap, err := canonicalOptions(options)
		if err != nil {
			return nil, nil, err
		}
		idx := -1
		if a.OptionIndex >= 0 && a.OptionIndex < len(remap) {
			idx = remap[a.OptionIndex]
		}
		if idx < 0 {
			return nil, nil, &Error{Kind: ErrNoCorrectAnswer, Message: "no correct option selected"}
		}
		out, _ := json.Marshal([]string{canon[idx]})
		return out, canon, nil

	case TypeMultiSelect:
		canon, remap, err := canonicalOptions(options)
		if err != nil {
			return nil, nil, err
		}
		seen := make(map[int]bool)
		for _, i := range a.OptionSet {
			if i >= 0 && i < len(remap) && remap[i] >= 0 {
				seen[remap[i]] = true
			}
		}
		if len(seen) == 0 {
			return nil, nil, &Error{Kind: ErrNoCorrectAnswer, Message: "no correct options selected"}
		}
		idxs := make([]int, 0, len(seen))
		for i := range seen {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		vals := make([]string, len(idxs))
		for j, i := range idxs {
			vals[j] = canon[i]
		}
		out, _ := json.Marshal(vals)
		return out, canon, nil

	case TypeTrueFalse:
		out, _ := json.Marshal([]bool{a.Truth})
		return out, nil, nil

	case TypeShortAnswer:
		accepted := make([]string, 0, len(a.Accepted))
		for _, s := range a.Accepted {
			if s = strings.TrimSpace(s); s != "" {
				accepted = append(accepted, s)
			}
		}
		if len(accepted) == 0 {
			return nil, nil, &Error{Kind: ErrNoAcceptableAnswer, Message: "at least one acceptable answer is required"}
		}
		out, _ := json.Marshal(accepted)
		return out, nil, nil

	case TypeNumeric, TypeScale:
		if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
			return nil, nil, &Error{Kind: ErrInvalidNumericValue, Message: "answer value must be a finite number"}
		}
		if math.IsNaN(a.Tolerance) || math.IsInf(a.Tolerance, 0) || a.Tolerance < 0 {
			return nil, nil, &Error{Kind: ErrInvalidNumericValue, Message: "tolerance must be a finite non-negative number"}
		}
		out, _ := json.Marshal([]valueTolerance{{Value: a.Value, Tolerance: a.Tolerance}})
		return out, nil, nil
	}
	return nil, nil, &Error{Kind: ErrInvalidAnswerShape, Message: "unknown question type " + string(t)}
}

func indexOfOption(options []string, s string) int {
	for i, o := range options {
		if o == s {
			return i
		}
	}
	return -1
}

// canonicalOptions trims option strings and drops blanks, returning the
// canonical list plus a remap from original index to canonical index
// (-1 for dropped entries). At least two distinct options must survive.
func canonicalOptions(options []string) ([]string, []int, *Error) {
	canon := make([]string, 0, len(options))
	remap := make([]int, len(options))
	seen := make(map[string]bool)
	for i, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			remap[i] = -1
			continue
		}
		if seen[o] {
			return nil, nil, &Error{Kind: ErrInvalidAnswerShape, Message: "duplicate option " + strconv.Quote(o)}
		}
		seen[o] = true
		remap[i] = len(canon)
		canon = append(canon, o)
	}
	if len(canon) < 2 {
		return nil, nil, &Error{Kind: ErrInsufficientOptions, Message: "at least two non-empty options are required"}
	}
	return canon, remap, nil
}
