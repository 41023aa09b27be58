package engine

// ScoreMultiplier maps an integer percentage to its reward band.
// The exact-100 check runs first since 100 also satisfies the ≥90 band.
func ScoreMultiplier(percentage int) float64 {
	switch {
	case percentage == 100:
		return 1.5
	case percentage >= 90:
		return 1.25
	case percentage >= 70:
		return 1.0
	case percentage >= 50:
		return 0.75
	default:
		return 0.25
	}
}

// TimeMultiplier rewards finishing a timed quiz quickly. Untimed quizzes
// (limit ≤ 0) get a neutral 1.0. Negative timeTaken is clamped to zero
// before the ratio so the result can never exceed the lightning band.
func TimeMultiplier(timeLimitSeconds, timeTakenSeconds int) float64 {
	if timeLimitSeconds <= 0 {
		return 1.0
	}
	if timeTakenSeconds < 0 {
		timeTakenSeconds = 0
	}
	ratio := float64(timeTakenSeconds) / float64(timeLimitSeconds)
	switch {
	case ratio < 0.3:
		return 1.5
	case ratio < 0.5:
		return 1.25
	case ratio < 0.8:
		return 1.0
	default:
		return 0.75
	}
}

// StreakBonus returns the additive bonus for the user's current daily
// streak: the bonus of the highest configured tier the streak meets or
// exceeds, 0 below the first tier. The top tier is the cap.
func (e *Engine) StreakBonus(currentStreakDays int) float64 {
	if currentStreakDays <= 0 {
		return 0
	}
	bonus := 0.0
	for _, tier := range e.cfg.StreakTiers {
		if currentStreakDays >= tier.Days {
			bonus = tier.Bonus
		}
	}
	return bonus
}

// QuestionCountScaling normalizes XP against a 10-question baseline.
// Quizzes under 5 questions are floored at 0.5 so very short quizzes
// aren't crushed to nothing.
func QuestionCountScaling(questionCount int) float64 {
	scaling := float64(questionCount) / 10
	if questionCount < 5 && scaling < 0.5 {
		return 0.5
	}
	return scaling
}
