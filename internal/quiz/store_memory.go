package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore keeps quizzes in a map. Used by tests and offline runs;
// replace-the-whole-set semantics match the SQL store.
type memoryStore struct {
	mu      sync.RWMutex
	quizzes map[string]Quiz
}

func NewMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Quiz{}}
}

func (m *memoryStore) ReplaceQuiz(_ context.Context, q Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	questions := make([]Question, len(q.Questions))
	copy(questions, q.Questions)
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		questions[i].Order = i
	}
	q.Questions = questions
	q.UpdatedAt = time.Now().Unix()

	m.quizzes[q.ID] = cloneQuiz(q)
	return cloneQuiz(q), nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return cloneQuiz(q), nil
}

func (m *memoryStore) ListQuizzes(_ context.Context, publicOnly bool) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		if publicOnly && !q.Public {
			continue
		}
		out = append(out, cloneQuiz(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func cloneQuiz(q Quiz) Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	copy(out.Questions, q.Questions)
	if q.DefaultTimeSec != nil {
		v := *q.DefaultTimeSec
		out.DefaultTimeSec = &v
	}
	return out
}
