package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SQLStore persists quizzes in two tables (quizzes, questions) and works
// against both sqlite and postgres; see internal/db for the schema.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ReplaceQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quiz{}, err
	}
	defer tx.Rollback()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.UpdatedAt = time.Now().Unix()

	_, err = tx.ExecContext(ctx, `INSERT INTO quizzes (id,title,description,is_public,default_points,default_time_limit_sec,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description,
			is_public=EXCLUDED.is_public, default_points=EXCLUDED.default_points,
			default_time_limit_sec=EXCLUDED.default_time_limit_sec, updated_at=EXCLUDED.updated_at`,
		q.ID, q.Title, q.Description, q.Public, q.DefaultPoints, q.DefaultTimeSec, q.UpdatedAt)
	if err != nil {
		return Quiz{}, err
	}

	// reconcile the question set: update by id, insert when the id is new
	// or absent, delete persisted questions the new set no longer carries
	rows, err := tx.QueryContext(ctx, `SELECT id FROM questions WHERE quiz_id=$1`, q.ID)
	if err != nil {
		return Quiz{}, err
	}
	existing := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return Quiz{}, err
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Quiz{}, err
	}

	kept := map[string]bool{}
	questions := make([]Question, len(q.Questions))
	copy(questions, q.Questions)
	for i := range questions {
		qq := &questions[i]
		qq.Order = i
		optJSON, err := json.Marshal(qq.Options)
		if err != nil {
			return Quiz{}, err
		}
		if qq.ID != "" && existing[qq.ID] {
			_, err = tx.ExecContext(ctx, `UPDATE questions SET ord=$1, type=$2, prompt=$3, points=$4,
				time_limit_sec=$5, competency_tag=$6, difficulty=$7, explanation=$8,
				options_json=$9, correct_answers_json=$10 WHERE id=$11`,
				qq.Order, string(qq.Type), qq.Prompt, qq.Points, qq.TimeLimitSec,
				qq.CompetencyTag, qq.Difficulty, qq.Explanation,
				string(optJSON), string(qq.CorrectAnswers), qq.ID)
		} else {
			if qq.ID == "" {
				qq.ID = uuid.NewString()
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO questions
				(id, quiz_id, ord, type, prompt, points, time_limit_sec, competency_tag, difficulty, explanation, options_json, correct_answers_json)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
				qq.ID, q.ID, qq.Order, string(qq.Type), qq.Prompt, qq.Points, qq.TimeLimitSec,
				qq.CompetencyTag, qq.Difficulty, qq.Explanation,
				string(optJSON), string(qq.CorrectAnswers))
		}
		if err != nil {
			return Quiz{}, err
		}
		kept[qq.ID] = true
	}
	for id := range existing {
		if !kept[id] {
			if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id); err != nil {
				return Quiz{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Quiz{}, err
	}
	q.Questions = questions
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,description,is_public,default_points,default_time_limit_sec,updated_at
		FROM quizzes WHERE id=$1`, id)
	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, ord, type, prompt, points, time_limit_sec, competency_tag, difficulty, explanation, options_json, correct_answers_json
		FROM questions WHERE quiz_id=$1 ORDER BY ord`, id)
	if err != nil {
		return Quiz{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var qq Question
		var typ, optJSON, ansJSON string
		var timeLim sql.NullInt64
		if err := rows.Scan(&qq.ID, &qq.Order, &typ, &qq.Prompt, &qq.Points, &timeLim,
			&qq.CompetencyTag, &qq.Difficulty, &qq.Explanation, &optJSON, &ansJSON); err != nil {
			return Quiz{}, err
		}
		qq.Type = QuestionType(typ)
		if timeLim.Valid {
			v := int(timeLim.Int64)
			qq.TimeLimitSec = &v
		}
		if err := json.Unmarshal([]byte(optJSON), &qq.Options); err != nil {
			qq.Options = nil
		}
		qq.CorrectAnswers = json.RawMessage(ansJSON)
		q.Questions = append(q.Questions, qq)
	}
	if err := rows.Err(); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, publicOnly bool) ([]Quiz, error) {
	query := `SELECT id,title,description,is_public,default_points,default_time_limit_sec,updated_at FROM quizzes`
	if publicOnly {
		query += ` WHERE is_public`
	}
	query += ` ORDER BY title`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	var timeLim sql.NullInt64
	if err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Public, &q.DefaultPoints, &timeLim, &q.UpdatedAt); err != nil {
		return Quiz{}, err
	}
	if timeLim.Valid {
		v := int(timeLim.Int64)
		q.DefaultTimeSec = &v
	}
	return q, nil
}
