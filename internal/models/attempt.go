package models

import "time"

// Attempt is one user's completed pass at one quiz. Immutable once recorded.
type Attempt struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	QuizID           int64     `json:"quiz_id"`
	Answers          []int     `json:"answers"`
	Score            int       `json:"score"`
	Percentage       int       `json:"percentage"`
	IsCompleted      bool      `json:"is_completed"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	XPEarned         int       `json:"xp_earned"`
	CreatedAt        time.Time `json:"created_at"`
}

// AttemptSummary is the slice of attempt data the achievement recount needs.
type AttemptSummary struct {
	Percentage       int  `json:"percentage"`
	TimeTakenSeconds int  `json:"time_taken_seconds"`
	TimeLimitSeconds *int `json:"time_limit_seconds,omitempty"`
}

type SubmitAttemptRequest struct {
	// Answers holds one selected choice index per question, -1 for unanswered.
	Answers          []int `json:"answers"`
	TimeTakenSeconds int   `json:"time_taken_seconds"`
}

type SubmitAttemptResponse struct {
	AttemptID   int64        `json:"attempt_id"`
	Score       int          `json:"score"`
	Percentage  int          `json:"percentage"`
	IsCompleted bool         `json:"is_completed"`
	XPEarned    int          `json:"xp_earned"`
	XPBreakdown XPBreakdown  `json:"xp_breakdown"`
	Streak      StreakResult `json:"streak"`
}

// XPBreakdown exposes each term of the XP formula for the result screen.
type XPBreakdown struct {
	BaseXP            int     `json:"base_xp"`
	ScoreMultiplier   float64 `json:"score_multiplier"`
	TimeMultiplier    float64 `json:"time_multiplier"`
	StreakBonus       float64 `json:"streak_bonus"`
	PerfectScoreBonus int     `json:"perfect_score_bonus"`
	QuestionScaling   float64 `json:"question_scaling"`
	FinalXP           int     `json:"final_xp"`
}

type StreakResult struct {
	Current   int  `json:"current"`
	Best      int  `json:"best"`
	Extended  bool `json:"extended"`
	WasBroken bool `json:"was_broken"`
}

type AttemptHistoryResponse struct {
	Attempts []Attempt `json:"attempts"`
}
