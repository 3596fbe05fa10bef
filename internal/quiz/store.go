package quiz

import "context"

// Store is the persistence collaborator. ReplaceQuiz is a full replace of
// the quiz aggregate: the supplied question set is reconciled against the
// persisted one (match by id, insert when the id is new or missing, delete
// persisted questions absent from the set), applied atomically, and the
// resulting canonical record is returned with all identifiers assigned.
type Store interface {
	ReplaceQuiz(ctx context.Context, q Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context, publicOnly bool) ([]Quiz, error)
}
