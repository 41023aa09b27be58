package engine

import "github.com/quizhive/backend/internal/models"

// StreakTier maps a streak length in days to the bonus it unlocks.
// Tiers are scanned in ascending order; the highest tier the streak
// meets or exceeds wins.
type StreakTier struct {
	Days  int
	Bonus float64
}

// Config holds every tunable of the reward engine. It is an immutable
// value handed to New — never a package-level singleton — so tests and
// tenants can carry their own tables.
type Config struct {
	// BaseXP is the starting XP per difficulty tier, before multipliers.
	BaseXP map[models.Difficulty]int
	// MinXP is the floor applied to every award, however unfavorable
	// the multiplier product turns out.
	MinXP int
	// PerfectScoreBonus is the flat XP added at exactly 100%.
	PerfectScoreBonus int
	// StreakTiers must be sorted ascending by Days.
	StreakTiers []StreakTier
}

// DefaultConfig returns the production reward tables.
func DefaultConfig() Config {
	return Config{
		BaseXP: map[models.Difficulty]int{
			models.DifficultyBeginner:     10,
			models.DifficultyIntermediate: 20,
			models.DifficultyAdvanced:     30,
		},
		MinXP:             25,
		PerfectScoreBonus: 50,
		StreakTiers: []StreakTier{
			{Days: 3, Bonus: 0.10},
			{Days: 7, Bonus: 0.20},
			{Days: 14, Bonus: 0.35},
			{Days: 30, Bonus: 0.50},
		},
	}
}

// Engine computes attempt scores, XP awards, streak transitions and
// achievement progress. All methods are pure over their inputs; callers
// own persistence.
type Engine struct {
	cfg Config
}

// New builds an engine around cfg.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's reward tables.
func (e *Engine) Config() Config {
	return e.cfg
}
