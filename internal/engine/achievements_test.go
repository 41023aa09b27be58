package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func testCatalog() []models.Achievement {
	return []models.Achievement{
		{ID: "quiz_explorer", RequirementKind: "total_attempts", GoldThreshold: 5},
		{ID: "perfectionist", RequirementKind: "perfect_scores", GoldThreshold: 2},
		{ID: "speed_demon", RequirementKind: "fast_completions", GoldThreshold: 2},
	}
}

func TestRecomputeAchievements_Counts(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	now := time.Now()

	history := []models.AttemptSummary{
		{Percentage: 100, TimeTakenSeconds: 20, TimeLimitSeconds: intPtr(100)}, // perfect + fast
		{Percentage: 100, TimeTakenSeconds: 90, TimeLimitSeconds: intPtr(100)}, // perfect
		{Percentage: 60, TimeTakenSeconds: 10, TimeLimitSeconds: intPtr(100)},  // fast
		{Percentage: 80, TimeTakenSeconds: 25},                                 // untimed, never fast
		{Percentage: 40, TimeTakenSeconds: 30, TimeLimitSeconds: intPtr(100)},  // ratio exactly 0.3 is not fast
	}

	updates := e.RecomputeAchievements(history, testCatalog(), now)
	require.Len(t, updates, 3)

	byID := make(map[string]engine.AchievementUpdate)
	for _, u := range updates {
		byID[u.AchievementID] = u
	}

	assert.Equal(t, 5, byID["quiz_explorer"].Progress)
	assert.True(t, byID["quiz_explorer"].Completed)
	require.NotNil(t, byID["quiz_explorer"].CompletedAt)

	assert.Equal(t, 2, byID["perfectionist"].Progress)
	assert.True(t, byID["perfectionist"].Completed)

	assert.Equal(t, 2, byID["speed_demon"].Progress)
	assert.True(t, byID["speed_demon"].Completed)
}

func TestRecomputeAchievements_BelowThreshold(t *testing.T) {
	e := engine.New(engine.DefaultConfig())

	history := []models.AttemptSummary{
		{Percentage: 70, TimeTakenSeconds: 90, TimeLimitSeconds: intPtr(100)},
	}

	updates := e.RecomputeAchievements(history, testCatalog(), time.Now())
	for _, u := range updates {
		assert.False(t, u.Completed, "%s should not complete", u.AchievementID)
		assert.Nil(t, u.CompletedAt)
	}
}

func TestRecomputeAchievements_Idempotent(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	now := time.Now()

	history := []models.AttemptSummary{
		{Percentage: 100, TimeTakenSeconds: 5, TimeLimitSeconds: intPtr(100)},
		{Percentage: 100, TimeTakenSeconds: 5, TimeLimitSeconds: intPtr(100)},
	}

	first := e.RecomputeAchievements(history, testCatalog(), now)
	second := e.RecomputeAchievements(history, testCatalog(), now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].AchievementID, second[i].AchievementID)
		assert.Equal(t, first[i].Progress, second[i].Progress)
		assert.Equal(t, first[i].Completed, second[i].Completed)
	}
}

func TestRecomputeAchievements_UnknownKindSkipped(t *testing.T) {
	e := engine.New(engine.DefaultConfig())

	catalog := append(testCatalog(), models.Achievement{
		ID: "night_owl", RequirementKind: "midnight_attempts", GoldThreshold: 3,
	})

	updates := e.RecomputeAchievements(nil, catalog, time.Now())

	// The unknown kind is dropped; the rest of the batch still computes.
	require.Len(t, updates, 3)
	for _, u := range updates {
		assert.NotEqual(t, "night_owl", u.AchievementID)
	}
}

func TestParseRequirementKind(t *testing.T) {
	assert.Equal(t, engine.RequirementTotalAttempts, engine.ParseRequirementKind("total_attempts"))
	assert.Equal(t, engine.RequirementPerfectScores, engine.ParseRequirementKind("perfect_scores"))
	assert.Equal(t, engine.RequirementFastCompletions, engine.ParseRequirementKind("fast_completions"))
	assert.Equal(t, engine.RequirementUnknown, engine.ParseRequirementKind("midnight_attempts"))
	assert.Equal(t, engine.RequirementUnknown, engine.ParseRequirementKind(""))
}
