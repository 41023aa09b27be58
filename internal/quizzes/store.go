package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quizhive/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// BeginTx starts the per-attempt transaction. The submission pipeline
// runs inside it so an attempt row, its XP credit and the streak update
// land together or not at all.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// ── Quiz Reads ──────────────────────────────────────────

func (s *Store) ListQuizzes() ([]models.Quiz, error) {
	rows, err := s.db.Query(
		`SELECT q.id, q.title, COALESCE(q.description, ''), q.difficulty, q.time_limit_seconds,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id), q.created_at
		 FROM quizzes q
		 ORDER BY q.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Difficulty,
			&q.TimeLimitSeconds, &q.QuestionCount, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	return quizzes, rows.Err()
}

// GetQuizWithQuestions loads a quiz and its ordered questions, correct
// indices included. Returns sql.ErrNoRows when the quiz is missing.
func (s *Store) GetQuizWithQuestions(quizID int64) (*models.Quiz, error) {
	var q models.Quiz
	err := s.db.QueryRow(
		`SELECT id, title, COALESCE(description, ''), difficulty, time_limit_seconds, created_at
		 FROM quizzes WHERE id = $1`,
		quizID,
	).Scan(&q.ID, &q.Title, &q.Description, &q.Difficulty, &q.TimeLimitSeconds, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, quiz_id, position, title, choices, correct_index
		 FROM questions WHERE quiz_id = $1 ORDER BY position`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var qu models.Question
		var choicesJSON []byte
		if err := rows.Scan(&qu.ID, &qu.QuizID, &qu.Position, &qu.Title, &choicesJSON, &qu.CorrectIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(choicesJSON, &qu.Choices); err != nil {
			return nil, fmt.Errorf("decode choices for question %d: %w", qu.ID, err)
		}
		q.Questions = append(q.Questions, qu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	q.QuestionCount = len(q.Questions)
	return &q, nil
}

// ── Attempts ────────────────────────────────────────────

// InsertAttempt writes the attempt row inside the submission transaction.
func (s *Store) InsertAttempt(tx *sql.Tx, a *models.Attempt) error {
	answersJSON, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	err = tx.QueryRow(
		`INSERT INTO attempts (user_id, quiz_id, answers, score, percentage, is_completed, time_taken_seconds, xp_earned)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		a.UserID, a.QuizID, answersJSON, a.Score, a.Percentage, a.IsCompleted, a.TimeTakenSeconds, a.XPEarned,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *Store) GetAttemptHistory(userID int64, limit int) ([]models.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, quiz_id, answers, score, percentage, is_completed, time_taken_seconds, xp_earned, created_at
		 FROM attempts WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempt history: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var answersJSON []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &answersJSON, &a.Score, &a.Percentage,
			&a.IsCompleted, &a.TimeTakenSeconds, &a.XPEarned, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(answersJSON, &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for attempt %d: %w", a.ID, err)
		}
		attempts = append(attempts, a)
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	return attempts, rows.Err()
}
