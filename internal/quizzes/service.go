package quizzes

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/quizhive/backend/internal/apperr"
	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/internal/progress"
)

type Service struct {
	store    *Store
	progress *progress.Service
	engine   *engine.Engine
}

func NewService(store *Store, progressSvc *progress.Service, eng *engine.Engine) *Service {
	return &Service{store: store, progress: progressSvc, engine: eng}
}

func (s *Service) ListQuizzes() ([]models.Quiz, error) {
	return s.store.ListQuizzes()
}

// GetQuiz returns a quiz for taking: questions in order, correct
// indices withheld by the model's JSON encoding.
func (s *Service) GetQuiz(quizID int64) (*models.Quiz, error) {
	quiz, err := s.store.GetQuizWithQuestions(quizID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("quiz", quizID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return quiz, nil
}

// SubmitAttempt runs the full scoring pipeline for one submission:
//
//	grade answers → lock the user's progress row → compute XP from the
//	streak the user carried INTO the attempt → apply the day's streak
//	transition → persist attempt + XP + streak in one transaction.
//
// XP deliberately reads the pre-update streak: the reward reflects the
// user's standing entering the attempt, and today's activity raises the
// multiplier starting with the next attempt's day.
//
// The achievement recount runs after commit; it is a derived view over
// attempt history, so its failure is logged, not surfaced.
func (s *Service) SubmitAttempt(ctx context.Context, userID, quizID int64, req models.SubmitAttemptRequest) (*models.SubmitAttemptResponse, error) {
	if req.TimeTakenSeconds < 0 {
		return nil, apperr.Validation("time_taken_seconds", "must not be negative")
	}

	quiz, err := s.store.GetQuizWithQuestions(quizID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("quiz", quizID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(quiz.Questions) == 0 {
		return nil, apperr.Validation("quiz", "has no questions")
	}

	score := engine.EvaluateAttempt(quiz.Questions, req.Answers)

	timeLimit := 0
	if quiz.TimeLimitSeconds != nil {
		timeLimit = *quiz.TimeLimitSeconds
	}

	now := time.Now()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer tx.Rollback()

	prog, err := s.progress.Store().GetOrCreateForUpdate(tx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	xpRes, err := s.engine.ComputeXP(engine.XPInput{
		Difficulty:       quiz.Difficulty,
		Percentage:       score.Percentage,
		TimeLimitSeconds: timeLimit,
		TimeTakenSeconds: req.TimeTakenSeconds,
		CurrentStreak:    prog.CurrentStreak,
		QuestionCount:    len(quiz.Questions),
	})
	if err != nil {
		return nil, err
	}

	streakUpd := engine.ApplyStreakActivity(*prog, now)

	attempt := &models.Attempt{
		UserID:           userID,
		QuizID:           quizID,
		Answers:          normalizeAnswers(req.Answers, len(quiz.Questions)),
		Score:            score.Score,
		Percentage:       score.Percentage,
		IsCompleted:      score.IsCompleted,
		TimeTakenSeconds: req.TimeTakenSeconds,
		XPEarned:         xpRes.FinalXP,
	}

	if err := s.store.InsertAttempt(tx, attempt); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.progress.Store().ApplyAttempt(tx, userID, xpRes.FinalXP, streakUpd); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}

	// Audit trail and achievement recount are derived state; neither
	// can fail a committed attempt.
	if err := s.progress.Store().LogXPEvent(userID, "attempt_scored", xpRes.FinalXP, map[string]interface{}{
		"quiz_id":          quizID,
		"percentage":       score.Percentage,
		"score_multiplier": xpRes.Breakdown.ScoreMultiplier,
		"time_multiplier":  xpRes.Breakdown.TimeMultiplier,
		"streak_bonus":     xpRes.Breakdown.StreakBonus,
		"perfect_bonus":    xpRes.Breakdown.PerfectScoreBonus,
		"question_scaling": xpRes.Breakdown.QuestionScaling,
	}); err != nil {
		log.Printf("[quizzes] failed to log XP event for user %d: %v", userID, err)
	}

	if err := s.progress.RecomputeAchievements(userID); err != nil {
		log.Printf("[quizzes] achievement recompute failed for user %d: %v", userID, err)
	}

	return &models.SubmitAttemptResponse{
		AttemptID:   attempt.ID,
		Score:       score.Score,
		Percentage:  score.Percentage,
		IsCompleted: score.IsCompleted,
		XPEarned:    xpRes.FinalXP,
		XPBreakdown: xpRes.Breakdown,
		Streak: models.StreakResult{
			Current:   streakUpd.CurrentStreak,
			Best:      streakUpd.BestStreak,
			Extended:  streakUpd.Extended,
			WasBroken: streakUpd.WasBroken,
		},
	}, nil
}

func (s *Service) GetAttemptHistory(userID int64, limit int) ([]models.Attempt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	attempts, err := s.store.GetAttemptHistory(userID, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return attempts, nil
}

// normalizeAnswers pads a short answers slice with -1 so the stored row
// always has one entry per question.
func normalizeAnswers(answers []int, questionCount int) []int {
	out := make([]int, questionCount)
	for i := range out {
		if i < len(answers) {
			out[i] = answers[i]
		} else {
			out[i] = -1
		}
	}
	return out
}
