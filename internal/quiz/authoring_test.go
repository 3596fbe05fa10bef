package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionDraftDefaults(t *testing.T) {
	d := NewQuestionDraft()
	assert.Equal(t, StateEmpty, d.State())
	assert.Equal(t, TypeMultipleChoice, d.Type)
	assert.Equal(t, []string{"", ""}, d.Options)
	assert.Equal(t, -1, d.Selected)
}

func TestTypeSwitchResetsTypeSpecificFields(t *testing.T) {
	d := NewQuestionDraft()
	d.SetPrompt("Capital of France?")
	d.SetPoints("25")
	d.SetTimeLimit("60")
	d.CompetencyTag = "geo-1"
	d.SetOption(0, "Paris")
	d.SetOption(1, "London")
	d.Select(0)

	d.SetType(TypeTrueFalse)

	assert.Equal(t, StateEditing, d.State())
	assert.Equal(t, TypeTrueFalse, d.Type)
	assert.Nil(t, d.Options, "options must not survive a type switch")
	assert.Equal(t, -1, d.Selected)
	assert.Empty(t, d.SelectedSet)
	assert.False(t, d.Truth)

	// type-agnostic fields survive
	assert.Equal(t, "Capital of France?", d.Prompt)
	assert.Equal(t, "25", d.Points)
	assert.Equal(t, "60", d.TimeLimit)
	assert.Equal(t, "geo-1", d.CompetencyTag)
}

func TestTypeSwitchBackRestoresBlankOptionRows(t *testing.T) {
	d := NewQuestionDraft()
	d.SetOption(0, "Paris")
	d.Select(0)
	d.SetType(TypeNumeric)
	d.SetType(TypeMultiSelect)
	assert.Equal(t, []string{"", ""}, d.Options)
	assert.Empty(t, d.SelectedSet)
}

func TestBuildPayloadMultipleChoice(t *testing.T) {
	d := NewQuestionDraft()
	d.SetPrompt("  Capital of France?  ")
	d.SetOption(0, "Paris")
	d.SetOption(1, "London")
	d.AddOption()
	d.SetOption(2, "Berlin")
	d.Select(0)

	q, err := d.BuildPayload(0, 10)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, d.State())
	assert.Equal(t, 0, q.Order)
	assert.Equal(t, "Capital of France?", q.Prompt)
	assert.Equal(t, 10, q.Points, "blank points field takes the quiz default")
	assert.Nil(t, q.TimeLimitSec)
	assert.Equal(t, []string{"Paris", "London", "Berlin"}, q.Options)
	assert.JSONEq(t, `["Paris"]`, string(q.CorrectAnswers))
}

func TestBuildPayloadExplicitFields(t *testing.T) {
	d := NewQuestionDraft()
	d.SetType(TypeNumeric)
	d.SetPrompt("Boiling point of water in C?")
	d.SetPoints("5")
	d.SetTimeLimit("90")
	d.SetValue("100")
	d.SetTolerance("0.5")
	d.Explanation = "  At sea level.  "

	q, err := d.BuildPayload(4, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, q.Order)
	assert.Equal(t, 5, q.Points)
	require.NotNil(t, q.TimeLimitSec)
	assert.Equal(t, 90, *q.TimeLimitSec)
	assert.Equal(t, "At sea level.", q.Explanation)
	assert.JSONEq(t, `[{"value":100,"tolerance":0.5}]`, string(q.CorrectAnswers))
}

func TestBuildPayloadBlankToleranceDefaultsToExact(t *testing.T) {
	d := NewQuestionDraft()
	d.SetType(TypeScale)
	d.SetPrompt("Rate 1-5")
	d.SetValue("4")

	q, err := d.BuildPayload(0, 10)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"value":4,"tolerance":0}]`, string(q.CorrectAnswers))
}

func TestBuildPayloadFailures(t *testing.T) {
	cases := []struct {
		name string
		prep func(d *QuestionDraft)
		kind ErrorKind
	}{
		{"missing prompt", func(d *QuestionDraft) {
			d.SetPrompt("   ")
		}, ErrMissingPrompt},
		{"bad points", func(d *QuestionDraft) {
			d.SetPrompt("p")
			d.SetOption(0, "a")
			d.SetOption(1, "b")
			d.Select(0)
			d.SetPoints("lots")
		}, ErrInvalidNumericValue},
		{"negative time limit", func(d *QuestionDraft) {
			d.SetPrompt("p")
			d.SetOption(0, "a")
			d.SetOption(1, "b")
			d.Select(0)
			d.SetTimeLimit("-5")
		}, ErrInvalidTimeLimit},
		{"numeric value not a number", func(d *QuestionDraft) {
			d.SetType(TypeNumeric)
			d.SetPrompt("p")
			d.SetValue("about twelve")
		}, ErrInvalidNumericValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewQuestionDraft()
			tc.prep(d)

			_, err := d.BuildPayload(1, 10)
			require.Error(t, err)
			assert.Equal(t, StateInvalid, d.State())
			require.NotNil(t, d.Err())
			assert.Equal(t, tc.kind, d.Err().Kind)
			assert.Equal(t, 2, d.Err().Position, "positions in errors are 1-based")
			assert.Contains(t, d.Err().Message, "question 2")

			// fixing a field returns the draft to editing
			d.SetPrompt("fixed prompt")
			assert.Equal(t, StateEditing, d.State())
			assert.Nil(t, d.Err())
		})
	}
}

func TestRemoveOptionShiftsSelections(t *testing.T) {
	d := NewQuestionDraft()
	d.SetType(TypeMultiSelect)
	d.SetOption(0, "a")
	d.SetOption(1, "b")
	d.AddOption()
	d.SetOption(2, "c")
	d.Toggle(1)
	d.Toggle(2)

	d.RemoveOption(1)
	assert.Equal(t, []string{"a", "c"}, d.Options)
	assert.Equal(t, map[int]bool{1: true}, d.SelectedSet)
}

func TestDraftFromQuestionRoundTrip(t *testing.T) {
	orig := Question{
		ID:             "q-1",
		Type:           TypeMultiSelect,
		Prompt:         "Pick primes",
		Points:         15,
		Options:        []string{"2", "3", "4"},
		CorrectAnswers: json.RawMessage(`["2","3"]`),
	}
	d := DraftFromQuestion(orig)
	assert.Equal(t, StateEditing, d.State())
	assert.Equal(t, "15", d.Points)
	assert.Equal(t, map[int]bool{0: true, 1: true}, d.SelectedSet)

	rebuilt, err := d.BuildPayload(0, 10)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, rebuilt.ID)
	assert.Equal(t, orig.Prompt, rebuilt.Prompt)
	assert.Equal(t, orig.Points, rebuilt.Points)
	assert.Equal(t, orig.Options, rebuilt.Options)
	assert.JSONEq(t, string(orig.CorrectAnswers), string(rebuilt.CorrectAnswers))
}

func TestDraftFromQuestionMalformedAnswersDegrade(t *testing.T) {
	d := DraftFromQuestion(Question{
		Type:           TypeTrueFalse,
		Prompt:         "The sky is green",
		CorrectAnswers: json.RawMessage(`["yes"]`),
	})
	assert.False(t, d.Truth, "legacy garbage must not crash the editor load")

	d = DraftFromQuestion(Question{
		Type:           TypeNumeric,
		Prompt:         "n",
		CorrectAnswers: json.RawMessage(`"not a number"`),
	})
	assert.Empty(t, d.Value)
	assert.Empty(t, d.Tolerance)
}
