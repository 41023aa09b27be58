package models

import "time"

// UserProgress is the per-user reward state: streak fields and lifetime XP.
// Streak fields are mutated only by the streak transitions in the engine;
// TotalXP only ever grows.
type UserProgress struct {
	UserID        int64      `json:"user_id"`
	TotalXP       int64      `json:"total_xp"`
	CurrentStreak int        `json:"current_streak"`
	BestStreak    int        `json:"best_streak"`
	// LastActivityDate is nil until the user's first recorded activity.
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ProgressResponse struct {
	TotalXP        int64  `json:"total_xp"`
	CurrentStreak  int    `json:"current_streak"`
	BestStreak     int    `json:"best_streak"`
	LastActivity   string `json:"last_activity_date,omitempty"`
	AttemptsTotal  int    `json:"attempts_total"`
	PerfectsTotal  int    `json:"perfects_total"`
	StreakWasReset bool   `json:"streak_was_reset"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	TotalXP       int64  `json:"total_xp"`
	CurrentStreak int    `json:"current_streak"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}
