package quiz

import "encoding/json"

// QuestionType discriminates the six supported answer shapes.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeMultiSelect    QuestionType = "multi_select"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeNumeric        QuestionType = "numeric"
	TypeScale          QuestionType = "scale"
)

// Known reports whether t is one of the six supported variants.
func (t QuestionType) Known() bool {
	switch t {
	case TypeMultipleChoice, TypeMultiSelect, TypeTrueFalse, TypeShortAnswer, TypeNumeric, TypeScale:
		return true
	}
	return false
}

// HasOptions reports whether the type carries an option list.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeMultiSelect
}

// Question is the persisted (and wire) form of a single quiz question.
// CorrectAnswers holds the generic encoded value described by the codec;
// its schema depends on Type.
type Question struct {
	ID             string          `json:"id,omitempty"`
	Order          int             `json:"order"`
	Type           QuestionType    `json:"type"`
	Prompt         string          `json:"prompt"`
	Points         int             `json:"points"`
	TimeLimitSec   *int            `json:"timeLimitSeconds,omitempty"` // nil means unlimited
	CompetencyTag  string          `json:"competencyTag,omitempty"`
	Difficulty     string          `json:"difficulty,omitempty"`
	Explanation    string          `json:"explanation,omitempty"`
	Options        []string        `json:"options,omitempty"`
	CorrectAnswers json.RawMessage `json:"correctAnswers,omitempty"`
}

// Quiz owns an ordered question set. Question order is dense (0..N-1);
// the store renormalizes it on every replace.
type Quiz struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Public          bool       `json:"public"`
	DefaultPoints   int        `json:"defaultPoints"`
	DefaultTimeSec  *int       `json:"defaultTimeLimitSeconds,omitempty"`
	Questions       []Question `json:"questions"`
	UpdatedAt       int64      `json:"updatedAt,omitempty"`
}

// Sanitized returns a copy of q with answer keys stripped, for read paths
// that serve quiz takers rather than authors.
func (q Quiz) Sanitized() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	copy(out.Questions, q.Questions)
	for i := range out.Questions {
		out.Questions[i].CorrectAnswers = nil
		out.Questions[i].Explanation = ""
	}
	return out
}
