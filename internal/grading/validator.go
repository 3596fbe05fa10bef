package grading

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Validate reports whether the submitted generic value answers q
// correctly. Both sides are decoded through the answer codec so they are
// compared in the same normalized shape; the transport layer is not
// trusted to pre-normalize submissions. A malformed or type-mismatched
// submission never errors, it is simply incorrect.
//
// Correctness is all-or-nothing at this layer. Partial credit would be a
// scoring policy on top of the boolean, not a validator concern.
func Validate(q quiz.Question, submitted json.RawMessage) bool {
	key := quiz.DecodeAnswer(q.Type, q.Options, q.CorrectAnswers)
	cand := quiz.DecodeAnswer(q.Type, q.Options, submitted)
	if !key.Conforms || !cand.Conforms {
		return false
	}

	switch q.Type {
	case quiz.TypeMultipleChoice:
		return cand.OptionIndex >= 0 && cand.OptionIndex == key.OptionIndex

	case quiz.TypeMultiSelect:
		// set equality: no extra, no missing
		return equalIntSets(cand.OptionSet, key.OptionSet)

	case quiz.TypeTrueFalse:
		return cand.Truth == key.Truth

	case quiz.TypeShortAnswer:
		if len(cand.Accepted) == 0 {
			return false
		}
		sub := fold(cand.Accepted[0])
		for _, k := range key.Accepted {
			if fold(k) == sub {
				return true
			}
		}
		return false

	case quiz.TypeNumeric, quiz.TypeScale:
		return math.Abs(cand.Value-key.Value) <= key.Tolerance
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func equalIntSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	// both sides come out of the codec sorted and deduplicated
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
