package models

import "time"

// Difficulty is a quiz's difficulty tier. It selects the base XP for attempts.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is a recognized tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	// TimeLimitSeconds is nil for untimed quizzes.
	TimeLimitSeconds *int       `json:"time_limit_seconds,omitempty"`
	QuestionCount    int        `json:"question_count"`
	CreatedAt        time.Time  `json:"created_at"`
	Questions        []Question `json:"questions,omitempty"`
}

type Question struct {
	ID       int64    `json:"id"`
	QuizID   int64    `json:"quiz_id"`
	Position int      `json:"position"`
	Title    string   `json:"title"`
	Choices  []string `json:"choices"`
	// CorrectIndex is stripped from API responses before an attempt is scored.
	CorrectIndex int `json:"-"`
}

type QuizListResponse struct {
	Quizzes []Quiz `json:"quizzes"`
}
