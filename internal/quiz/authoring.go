package quiz

import (
	"math"
	"strconv"
	"strings"
)

// DraftState tracks where one question sits in the authoring flow.
type DraftState string

const (
	StateEmpty     DraftState = "empty"     // fresh question, nothing touched
	StateEditing   DraftState = "editing"   // author is changing fields
	StateSubmitted DraftState = "submitted" // payload built and handed off
	StateInvalid   DraftState = "invalid"   // build rejected; Err carries why
)

// QuestionDraft is the editable in-memory form of one question. It is
// owned by a single editing session; committing a build discards it and
// editing again creates a fresh draft from the canonical record.
//
// Points and TimeLimit hold the raw form text: blank points means "use the
// quiz default", blank time limit means unlimited.
type QuestionDraft struct {
	state DraftState
	err   *Error

	ID     string
	Type   QuestionType
	Prompt string

	Points    string
	TimeLimit string

	CompetencyTag string
	Difficulty    string
	Explanation   string

	// type-specific fields; only the group matching Type is live
	Options     []string
	Selected    int          // multiple_choice; -1 when nothing is selected
	SelectedSet map[int]bool // multi_select
	Truth       bool         // true_false
	Accepted    []string     // short_answer
	Value       string       // numeric, scale (raw form text)
	Tolerance   string
}

// NewQuestionDraft returns an empty draft: default type, two blank
// options, no correct answer selected.
func NewQuestionDraft() *QuestionDraft {
	return &QuestionDraft{
		state:       StateEmpty,
		Type:        TypeMultipleChoice,
		Options:     []string{"", ""},
		Selected:    -1,
		SelectedSet: map[int]bool{},
	}
}

// DraftFromQuestion projects a persisted question into editable form.
// Decoding goes through the codec, so legacy or malformed correctAnswers
// degrade to the type's defaults instead of failing the load.
func DraftFromQuestion(q Question) *QuestionDraft {
	d := NewQuestionDraft()
	d.state = StateEditing
	d.ID = q.ID
	d.Type = q.Type
	d.Prompt = q.Prompt
	if q.Points > 0 {
		d.Points = strconv.Itoa(q.Points)
	}
	if q.TimeLimitSec != nil {
		d.TimeLimit = strconv.Itoa(*q.TimeLimitSec)
	}
	d.CompetencyTag = q.CompetencyTag
	d.Difficulty = q.Difficulty
	d.Explanation = q.Explanation

	if q.Type.HasOptions() {
		d.Options = append([]string(nil), q.Options...)
	}
	a := DecodeAnswer(q.Type, q.Options, q.CorrectAnswers)
	switch q.Type {
	case TypeMultipleChoice:
		d.Selected = a.OptionIndex
	case TypeMultiSelect:
		for _, i := range a.OptionSet {
			d.SelectedSet[i] = true
		}
	case TypeTrueFalse:
		d.Truth = a.Truth
	case TypeShortAnswer:
		d.Accepted = a.Accepted
	case TypeNumeric, TypeScale:
		if a.Conforms {
			d.Value = strconv.FormatFloat(a.Value, 'f', -1, 64)
			d.Tolerance = strconv.FormatFloat(a.Tolerance, 'f', -1, 64)
		}
	}
	return d
}

// State returns the draft's current state.
func (d *QuestionDraft) State() DraftState { return d.state }

// Err returns the error attached by the last failed build, if any.
func (d *QuestionDraft) Err() *Error { return d.err }

func (d *QuestionDraft) edit() {
	d.state = StateEditing
	d.err = nil
}

// SetType switches the question variant. All type-specific fields reset to
// the new type's empty defaults; prompt, points, time limit, competency
// tag, difficulty and explanation survive the switch. This keeps stale
// option indices and mismatched answer shapes from leaking across types.
func (d *QuestionDraft) SetType(t QuestionType) {
	d.edit()
	if t == d.Type {
		return
	}
	d.Type = t
	d.Options = nil
	if t.HasOptions() {
		d.Options = []string{"", ""}
	}
	d.Selected = -1
	d.SelectedSet = map[int]bool{}
	d.Truth = false
	d.Accepted = nil
	d.Value = ""
	d.Tolerance = ""
}

func (d *QuestionDraft) SetPrompt(p string)    { d.edit(); d.Prompt = p }
func (d *QuestionDraft) SetPoints(p string)    { d.edit(); d.Points = p }
func (d *QuestionDraft) SetTimeLimit(s string) { d.edit(); d.TimeLimit = s }
func (d *QuestionDraft) SetTruth(b bool)       { d.edit(); d.Truth = b }

func (d *QuestionDraft) SetOption(i int, text string) {
	d.edit()
	if i >= 0 && i < len(d.Options) {
		d.Options[i] = text
	}
}

func (d *QuestionDraft) AddOption() {
	d.edit()
	d.Options = append(d.Options, "")
}

// RemoveOption drops one option row and shifts selections down with it.
func (d *QuestionDraft) RemoveOption(i int) {
	d.edit()
	if i < 0 || i >= len(d.Options) {
		return
	}
	d.Options = append(d.Options[:i], d.Options[i+1:]...)
	if d.Selected == i {
		d.Selected = -1
	} else if d.Selected > i {
		d.Selected--
	}
	next := map[int]bool{}
	for j := range d.SelectedSet {
		switch {
		case j < i:
			next[j] = true
		case j > i:
			next[j-1] = true
		}
	}
	d.SelectedSet = next
}

// Select marks the single correct option for a multiple-choice question.
func (d *QuestionDraft) Select(i int) { d.edit(); d.Selected = i }

// Toggle flips membership of option i in a multi-select answer set.
func (d *QuestionDraft) Toggle(i int) {
	d.edit()
	if d.SelectedSet[i] {
		delete(d.SelectedSet, i)
	} else {
		d.SelectedSet[i] = true
	}
}

func (d *QuestionDraft) SetAccepted(answers []string) { d.edit(); d.Accepted = answers }
func (d *QuestionDraft) SetValue(v string)            { d.edit(); d.Value = v }
func (d *QuestionDraft) SetTolerance(t string)        { d.edit(); d.Tolerance = t }

// BuildPayload validates the draft and produces the persistable question.
// pos is the question's 0-based position in the quiz; error messages use
// the 1-based position. On failure the draft moves to StateInvalid with
// the error attached and the fields kept, so the author can fix and retry.
func (d *QuestionDraft) BuildPayload(pos, defaultPoints int) (Question, error) {
	fail := func(e *Error) (Question, error) {
		d.state = StateInvalid
		d.err = e
		return Question{}, e
	}

	prompt := strings.TrimSpace(d.Prompt)
	if prompt == "" {
		return fail((&Error{Kind: ErrMissingPrompt, Message: "prompt is required"}).at(pos + 1))
	}

	points := defaultPoints
	if s := strings.TrimSpace(d.Points); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fail((&Error{Kind: ErrInvalidNumericValue, Message: "points must be a positive integer"}).at(pos + 1))
		}
		points = n
	}

	var timeLimit *int
	if s := strings.TrimSpace(d.TimeLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fail((&Error{Kind: ErrInvalidTimeLimit, Message: "time limit must be a non-negative number of seconds"}).at(pos + 1))
		}
		timeLimit = &n
	}

	encoded, canonOptions, cerr := EncodeAnswer(d.Type, d.Options, d.answer())
	if cerr != nil {
		return fail(cerr.at(pos + 1))
	}

	d.state = StateSubmitted
	d.err = nil
	return Question{
		ID:             d.ID,
		Order:          pos,
		Type:           d.Type,
		Prompt:         prompt,
		Points:         points,
		TimeLimitSec:   timeLimit,
		CompetencyTag:  strings.TrimSpace(d.CompetencyTag),
		Difficulty:     strings.TrimSpace(d.Difficulty),
		Explanation:    strings.TrimSpace(d.Explanation),
		Options:        canonOptions,
		CorrectAnswers: encoded,
	}, nil
}

// answer assembles the typed answer the codec encodes. Numeric form text
// that fails to parse becomes NaN so encode rejects it with the right kind.
func (d *QuestionDraft) answer() Answer {
	a := Answer{Type: d.Type, OptionIndex: d.Selected}
	switch d.Type {
	case TypeMultiSelect:
		for i := range d.SelectedSet {
			a.OptionSet = append(a.OptionSet, i)
		}
	case TypeTrueFalse:
		a.Truth = d.Truth
	case TypeShortAnswer:
		a.Accepted = d.Accepted
	case TypeNumeric, TypeScale:
		a.Value = parseFloatField(d.Value)
		if s := strings.TrimSpace(d.Tolerance); s == "" {
			a.Tolerance = 0
		} else {
			a.Tolerance = parseFloatField(d.Tolerance)
		}
	}
	return a
}

func parseFloatField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
