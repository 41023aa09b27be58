package engine

import (
	"log"
	"time"

	"github.com/quizhive/backend/internal/models"
)

// RequirementKind is the closed set of achievement requirements the
// engine knows how to count. Catalog rows carry free-form strings so the
// catalog can evolve ahead of the engine; unknown kinds are skipped.
type RequirementKind int

const (
	RequirementUnknown RequirementKind = iota
	RequirementTotalAttempts
	RequirementPerfectScores
	RequirementFastCompletions
)

// ParseRequirementKind maps a catalog string to its kind,
// RequirementUnknown for anything unrecognized.
func ParseRequirementKind(s string) RequirementKind {
	switch s {
	case "total_attempts":
		return RequirementTotalAttempts
	case "perfect_scores":
		return RequirementPerfectScores
	case "fast_completions":
		return RequirementFastCompletions
	default:
		return RequirementUnknown
	}
}

// fastCompletionRatio: a timed attempt counts as fast below this
// fraction of the limit. Matches the lightning band of TimeMultiplier.
const fastCompletionRatio = 0.3

// AchievementUpdate is one recomputed (user, achievement) row to upsert.
// CompletedAt is the stamp for a completion observed in THIS pass; the
// store keeps the first-ever stamp on conflict, so recomputes never
// overwrite an earlier completion time.
type AchievementUpdate struct {
	AchievementID string
	Progress      int
	Completed     bool
	CompletedAt   *time.Time
}

// RecomputeAchievements recounts the user's full attempt history against
// the catalog. A full recount rather than an increment: running it twice
// over the same history yields identical results.
func (e *Engine) RecomputeAchievements(history []models.AttemptSummary, catalog []models.Achievement, now time.Time) []AchievementUpdate {
	totals := countHistory(history)

	updates := make([]AchievementUpdate, 0, len(catalog))
	for _, a := range catalog {
		var progress int
		switch ParseRequirementKind(a.RequirementKind) {
		case RequirementTotalAttempts:
			progress = totals.attempts
		case RequirementPerfectScores:
			progress = totals.perfects
		case RequirementFastCompletions:
			progress = totals.fast
		default:
			// Catalog entries may ship ahead of engine support.
			log.Printf("[engine] skipping achievement %q: unknown requirement kind %q", a.ID, a.RequirementKind)
			continue
		}

		upd := AchievementUpdate{
			AchievementID: a.ID,
			Progress:      progress,
			Completed:     progress >= a.GoldThreshold,
		}
		if upd.Completed {
			t := now
			upd.CompletedAt = &t
		}
		updates = append(updates, upd)
	}
	return updates
}

type historyTotals struct {
	attempts int
	perfects int
	fast     int
}

func countHistory(history []models.AttemptSummary) historyTotals {
	var t historyTotals
	for _, a := range history {
		t.attempts++
		if a.Percentage == 100 {
			t.perfects++
		}
		// Fast completions only count on time-limited quizzes.
		if a.TimeLimitSeconds != nil && *a.TimeLimitSeconds > 0 {
			taken := a.TimeTakenSeconds
			if taken < 0 {
				taken = 0
			}
			if float64(taken)/float64(*a.TimeLimitSeconds) < fastCompletionRatio {
				t.fast++
			}
		}
	}
	return t
}
