package models

import "time"

// Achievement is a catalog entry: a named requirement with tiered thresholds.
// Catalog rows are static configuration seeded by the migration; the engine
// tracks completion against the gold threshold only.
type Achievement struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	RequirementKind string `json:"requirement_kind"`
	BronzeThreshold int    `json:"bronze_threshold"`
	SilverThreshold int    `json:"silver_threshold"`
	GoldThreshold   int    `json:"gold_threshold"`
}

// AchievementProgress is the per-(user, achievement) upsert row.
// CompletedAt is set once on first completion and never overwritten.
type AchievementProgress struct {
	UserID        int64      `json:"user_id"`
	AchievementID string     `json:"achievement_id"`
	Progress      int        `json:"progress"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AchievementView joins a catalog entry with the user's progress toward it.
type AchievementView struct {
	Achievement
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type AchievementsResponse struct {
	Achievements []AchievementView `json:"achievements"`
}
