package grading

import (
	"encoding/json"
	"math"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Submission is one attempt's answers, keyed by question id, in the same
// generic encoding the codec uses for correct answers. TimedOut lists
// question ids the external timer reported as overrun.
type Submission struct {
	Answers  map[string]json.RawMessage `json:"answers"`
	TimedOut []string                   `json:"timedOut,omitempty"`
}

// QuestionResult is the graded outcome of a single question.
type QuestionResult struct {
	QuestionID     string `json:"questionId"`
	Correct        bool   `json:"correct"`
	TimedOut       bool   `json:"timedOut,omitempty"`
	PointsEarned   int    `json:"pointsEarned"`
	PointsPossible int    `json:"pointsPossible"`
}

// Summary aggregates an attempt's score.
type Summary struct {
	PointsEarned   int     `json:"pointsEarned"`
	PointsPossible int     `json:"pointsPossible"`
	Percentage     float64 `json:"percentage"` // rounded to one decimal place
}

// Report is the full grading output for one attempt.
type Report struct {
	QuizID  string           `json:"quizId"`
	Results []QuestionResult `json:"results"`
	Summary Summary          `json:"summary"`
}

// GradeAttempt grades one attempt against the quiz's question set. Each
// question's points were resolved at authoring time, so the engine only
// reads Question.Points. A timer overrun forces the question incorrect
// regardless of the answer comparison; that is the only override applied
// here. Grading is deterministic and side-effect free.
func GradeAttempt(q quiz.Quiz, sub Submission) Report {
	timedOut := make(map[string]bool, len(sub.TimedOut))
	for _, id := range sub.TimedOut {
		timedOut[id] = true
	}

	report := Report{QuizID: q.ID, Results: make([]QuestionResult, 0, len(q.Questions))}
	for _, question := range q.Questions {
		r := QuestionResult{
			QuestionID:     question.ID,
			PointsPossible: question.Points,
			TimedOut:       timedOut[question.ID],
		}
		if !r.TimedOut {
			r.Correct = Validate(question, sub.Answers[question.ID])
		}
		if r.Correct {
			r.PointsEarned = question.Points
		}
		report.Summary.PointsEarned += r.PointsEarned
		report.Summary.PointsPossible += r.PointsPossible
		report.Results = append(report.Results, r)
	}
	if report.Summary.PointsPossible > 0 {
		pct := float64(report.Summary.PointsEarned) / float64(report.Summary.PointsPossible) * 100
		report.Summary.Percentage = math.Round(pct*10) / 10
	}
	return report
}
