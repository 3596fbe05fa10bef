package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the wire. Authoring failures carry
// the full per-question error list so the author sees every problem in
// one round trip.
func writeError(w http.ResponseWriter, err error) {
	var list quiz.ErrorList
	if errors.As(err, &list) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": list})
		return
	}
	var qe *quiz.Error
	if errors.As(err, &qe) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": quiz.ErrorList{qe}})
		return
	}
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrMissingTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
