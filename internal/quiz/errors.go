package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuizNotFound is returned for operations referencing an unknown quiz.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrorKind tags an authoring failure so the UI can map it to a field.
type ErrorKind string

const (
	ErrMissingPrompt       ErrorKind = "missing_prompt"
	ErrInsufficientOptions ErrorKind = "insufficient_options"
	ErrNoCorrectAnswer     ErrorKind = "no_correct_answer"
	ErrNoAcceptableAnswer  ErrorKind = "no_acceptable_answer"
	ErrInvalidNumericValue ErrorKind = "invalid_numeric_value"
	ErrInvalidTimeLimit    ErrorKind = "invalid_time_limit"
	ErrInvalidAnswerShape  ErrorKind = "invalid_answer_shape"
)

// Error is a single authoring failure. Position is the 1-based question
// position shown to the author; zero means the error is quiz-level.
type Error struct {
	Kind     ErrorKind `json:"kind"`
	Position int       `json:"position,omitempty"`
	Message  string    `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// at returns a copy of e carrying the 1-based position, with the position
// appended to the message so the author can locate the offending question.
func (e *Error) at(pos int) *Error {
	cp := *e
	cp.Position = pos
	cp.Message = fmt.Sprintf("question %d: %s", pos, e.Message)
	return &cp
}

// ErrorList aggregates per-question failures; authoring reports every
// problem in one round trip instead of stopping at the first.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
