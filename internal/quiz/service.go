package quiz

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrMissingTitle rejects a quiz payload without a title.
var ErrMissingTitle = errors.New("quiz title is required")

// DefaultQuestionPoints applies when neither the question nor the quiz
// names a point value.
const DefaultQuestionPoints = 10

// Service validates authoring payloads and applies them to the store.
// A save is a single full replace of the quiz aggregate: it is either
// entirely applied or entirely rejected, and concurrent saves to the same
// quiz resolve last-write-wins.
type Service struct {
	store         Store
	defaultPoints int
	log           *slog.Logger
}

func NewService(store Store, defaultPoints int) *Service {
	if defaultPoints <= 0 {
		defaultPoints = DefaultQuestionPoints
	}
	return &Service{store: store, defaultPoints: defaultPoints, log: slog.Default()}
}

// CreateQuiz validates and persists a new quiz. The store assigns the id.
func (s *Service) CreateQuiz(ctx context.Context, in Quiz) (Quiz, error) {
	in.ID = ""
	return s.save(ctx, in)
}

// ReplaceQuiz validates the payload and replaces the question set of an
// existing quiz, reconciling by question id. Unknown quiz ids fail with
// ErrQuizNotFound.
func (s *Service) ReplaceQuiz(ctx context.Context, id string, in Quiz) (Quiz, error) {
	if _, err := s.store.GetQuiz(ctx, id); err != nil {
		return Quiz{}, err
	}
	in.ID = id
	return s.save(ctx, in)
}

// save runs every question through the authoring build step, collecting
// all failures so the author sees each problem in one round trip, then
// hands the encoded set to the store.
func (s *Service) save(ctx context.Context, in Quiz) (Quiz, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return Quiz{}, ErrMissingTitle
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.DefaultPoints <= 0 {
		in.DefaultPoints = s.defaultPoints
	}

	var errs ErrorList
	questions := make([]Question, 0, len(in.Questions))
	for i, wire := range in.Questions {
		if !wire.Type.Known() {
			errs = append(errs, (&Error{Kind: ErrInvalidAnswerShape, Message: "unknown question type " + string(wire.Type)}).at(i+1))
			continue
		}
		draft := DraftFromQuestion(wire)
		built, err := draft.BuildPayload(i, in.DefaultPoints)
		if err != nil {
			var qe *Error
			if errors.As(err, &qe) {
				errs = append(errs, qe)
			} else {
				return Quiz{}, err
			}
			continue
		}
		questions = append(questions, built)
	}
	if len(errs) > 0 {
		return Quiz{}, errs
	}

	in.Questions = questions
	out, err := s.store.ReplaceQuiz(ctx, in)
	if err != nil {
		return Quiz{}, err
	}
	s.log.Info("quiz saved", "quiz_id", out.ID, "questions", len(out.Questions))
	return out, nil
}

// GetQuiz returns the canonical record including answer keys; authoring
// reads need them to populate the editor.
func (s *Service) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	return s.store.GetQuiz(ctx, id)
}

// ListPublic returns public quizzes with answer keys stripped.
func (s *Service) ListPublic(ctx context.Context) ([]Quiz, error) {
	quizzes, err := s.store.ListQuizzes(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]Quiz, len(quizzes))
	for i, q := range quizzes {
		out[i] = q.Sanitized()
	}
	return out, nil
}
