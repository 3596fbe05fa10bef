package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/quiz"
)

// GradeAttemptHandler grades one attempt's submitted answers against the
// quiz's stored keys. Malformed submissions never fail the request; they
// score incorrect.
func GradeAttemptHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub grading.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q, err := svc.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, grading.GradeAttempt(q, sub))
	}
}
