package engine

import (
	"math"

	"github.com/quizhive/backend/internal/apperr"
	"github.com/quizhive/backend/internal/models"
)

// XPInput carries everything the XP formula needs. CurrentStreak must be
// the user's streak entering the attempt, before the day's streak
// transition is applied — the reward reflects standing at submission time.
type XPInput struct {
	Difficulty       models.Difficulty
	Percentage       int
	TimeLimitSeconds int // 0 for untimed
	TimeTakenSeconds int
	CurrentStreak    int
	QuestionCount    int
}

// XPResult is the final award plus every intermediate term, so callers
// can surface the breakdown on the result screen.
type XPResult struct {
	FinalXP   int
	Breakdown models.XPBreakdown
}

// ComputeXP runs the XP formula:
//
//	base → ×score band → ×time band → ×(1+streak bonus)
//	     → +perfect bonus → ×question-count scaling → floor at MinXP
//
// The flat perfect bonus lands after the multiplicative chain but before
// question-count scaling, so a short quiz shrinks the bonus too.
// Malformed input is rejected, not clamped; only negative timeTaken is
// clamp-tolerant (inside TimeMultiplier).
func (e *Engine) ComputeXP(in XPInput) (XPResult, error) {
	if in.Percentage < 0 || in.Percentage > 100 {
		return XPResult{}, apperr.Validation("percentage", "must be between 0 and 100")
	}
	if in.TimeLimitSeconds < 0 {
		return XPResult{}, apperr.Validation("time_limit_seconds", "must not be negative")
	}
	if in.QuestionCount <= 0 {
		return XPResult{}, apperr.Validation("question_count", "must be positive")
	}
	if in.CurrentStreak < 0 {
		return XPResult{}, apperr.Validation("current_streak", "must not be negative")
	}
	base, ok := e.cfg.BaseXP[in.Difficulty]
	if !ok {
		return XPResult{}, apperr.Validation("difficulty", "unknown tier "+string(in.Difficulty))
	}

	scoreMult := ScoreMultiplier(in.Percentage)
	timeMult := TimeMultiplier(in.TimeLimitSeconds, in.TimeTakenSeconds)
	streakBonus := e.StreakBonus(in.CurrentStreak)
	scaling := QuestionCountScaling(in.QuestionCount)

	xp := float64(base)
	xp *= scoreMult
	xp *= timeMult
	xp *= 1 + streakBonus

	perfectBonus := 0
	if in.Percentage == 100 {
		perfectBonus = e.cfg.PerfectScoreBonus
		xp += float64(perfectBonus)
	}

	xp *= scaling

	final := int(math.Round(xp))
	if final < e.cfg.MinXP {
		final = e.cfg.MinXP
	}

	return XPResult{
		FinalXP: final,
		Breakdown: models.XPBreakdown{
			BaseXP:            base,
			ScoreMultiplier:   scoreMult,
			TimeMultiplier:    timeMult,
			StreakBonus:       streakBonus,
			PerfectScoreBonus: perfectBonus,
			QuestionScaling:   scaling,
			FinalXP:           final,
		},
	}, nil
}
