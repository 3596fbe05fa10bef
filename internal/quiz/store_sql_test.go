package quiz_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/quiz"
)

func openTestStore(t *testing.T) *quiz.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "quizforge_test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return quiz.NewSQLStore(dbh)
}

func seedQuiz() quiz.Quiz {
	limit := 45
	return quiz.Quiz{
		Title:          "Astronomy",
		Description:    "Solar system basics",
		Public:         true,
		DefaultPoints:  10,
		DefaultTimeSec: &limit,
		Questions: []quiz.Question{
			{
				Type:           quiz.TypeMultipleChoice,
				Prompt:         "Closest planet to the sun?",
				Points:         10,
				Options:        []string{"Mercury", "Venus"},
				CorrectAnswers: json.RawMessage(`["Mercury"]`),
			},
			{
				Type:           quiz.TypeNumeric,
				Prompt:         "How many planets?",
				Points:         20,
				TimeLimitSec:   &limit,
				CompetencyTag:  "astro-1",
				CorrectAnswers: json.RawMessage(`[{"value":8,"tolerance":0}]`),
			},
		},
	}
}

func TestSQLStoreReplaceAndGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	saved, err := store.ReplaceQuiz(ctx, seedQuiz())
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected assigned quiz id")
	}

	got, err := store.GetQuiz(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Astronomy" || !got.Public {
		t.Fatalf("quiz row mismatch: %+v", got)
	}
	if got.DefaultTimeSec == nil || *got.DefaultTimeSec != 45 {
		t.Fatalf("default time limit mismatch: %+v", got.DefaultTimeSec)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got.Questions))
	}
	q0, q1 := got.Questions[0], got.Questions[1]
	if q0.Order != 0 || q1.Order != 1 {
		t.Fatalf("order not dense: %d, %d", q0.Order, q1.Order)
	}
	if q0.Type != quiz.TypeMultipleChoice || len(q0.Options) != 2 {
		t.Fatalf("question 0 mismatch: %+v", q0)
	}
	if q0.TimeLimitSec != nil {
		t.Fatalf("question 0 should be unlimited, got %v", *q0.TimeLimitSec)
	}
	if q1.TimeLimitSec == nil || *q1.TimeLimitSec != 45 {
		t.Fatalf("question 1 time limit mismatch")
	}
	if q1.CompetencyTag != "astro-1" {
		t.Fatalf("competency tag lost: %+v", q1)
	}
	var rec []map[string]float64
	if err := json.Unmarshal(q1.CorrectAnswers, &rec); err != nil || len(rec) != 1 || rec[0]["value"] != 8 {
		t.Fatalf("correct answers did not round-trip: %s", q1.CorrectAnswers)
	}
}

func TestSQLStoreReconcileByID(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	saved, err := store.ReplaceQuiz(ctx, seedQuiz())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	keepID := saved.Questions[1].ID
	droppedID := saved.Questions[0].ID

	update := saved
	update.Questions = []quiz.Question{
		{
			Type:           quiz.TypeTrueFalse,
			Prompt:         "Pluto is a planet",
			Points:         5,
			CorrectAnswers: json.RawMessage(`[false]`),
		},
		saved.Questions[1],
	}
	update.Questions[1].Prompt = "How many planets orbit the sun?"

	out, err := store.ReplaceQuiz(ctx, update)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(out.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out.Questions))
	}

	got, err := store.GetQuiz(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions after reconcile, got %d", len(got.Questions))
	}
	if got.Questions[0].ID == droppedID || got.Questions[1].ID == droppedID {
		t.Fatal("omitted question survived the replace")
	}
	if got.Questions[1].ID != keepID {
		t.Fatalf("kept question lost its id: %s != %s", got.Questions[1].ID, keepID)
	}
	if got.Questions[1].Prompt != "How many planets orbit the sun?" {
		t.Fatalf("kept question not updated: %q", got.Questions[1].Prompt)
	}
	if got.Questions[0].Order != 0 || got.Questions[1].Order != 1 {
		t.Fatal("order not renormalized")
	}
}

func TestSQLStoreGetUnknown(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetQuiz(context.Background(), "missing"); err != quiz.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSQLStoreListPublicOnly(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	pub := seedQuiz()
	if _, err := store.ReplaceQuiz(ctx, pub); err != nil {
		t.Fatalf("seed public: %v", err)
	}
	priv := seedQuiz()
	priv.Title = "Hidden"
	priv.Public = false
	if _, err := store.ReplaceQuiz(ctx, priv); err != nil {
		t.Fatalf("seed private: %v", err)
	}

	all, err := store.ListQuizzes(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(all))
	}
	public, err := store.ListQuizzes(ctx, true)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Astronomy" {
		t.Fatalf("expected only the public quiz, got %+v", public)
	}
}
