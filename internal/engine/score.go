package engine

import (
	"log"
	"math"

	"github.com/quizhive/backend/internal/models"
)

// ScoreResult is the outcome of grading one attempt.
type ScoreResult struct {
	Score       int
	Percentage  int
	IsCompleted bool
}

// EvaluateAttempt grades submitted answer indices against the quiz's
// questions. An answer counts when it is present and matches the
// question's correct choice index; a shorter answers slice simply leaves
// the remaining questions unanswered. Unanswered slots may also be -1.
func EvaluateAttempt(questions []models.Question, answers []int) ScoreResult {
	if len(questions) == 0 {
		// No production path creates an empty quiz; don't divide by zero.
		log.Printf("[engine] evaluating attempt against quiz with no questions")
		return ScoreResult{}
	}

	score := 0
	answered := 0
	for i, q := range questions {
		if i >= len(answers) || answers[i] < 0 {
			continue
		}
		answered++
		if answers[i] == q.CorrectIndex {
			score++
		}
	}

	pct := int(math.Round(float64(score) / float64(len(questions)) * 100))

	return ScoreResult{
		Score:       score,
		Percentage:  pct,
		IsCompleted: answered == len(questions),
	}
}
