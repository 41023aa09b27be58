package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func progressWith(current, best int, last *time.Time) models.UserProgress {
	return models.UserProgress{CurrentStreak: current, BestStreak: best, LastActivityDate: last}
}

func TestApplyStreakActivity_FirstActivity(t *testing.T) {
	upd := engine.ApplyStreakActivity(progressWith(0, 0, nil), day("2026-09-01"))

	assert.Equal(t, 1, upd.CurrentStreak)
	assert.Equal(t, 1, upd.BestStreak)
	assert.Equal(t, day("2026-09-01"), upd.LastActivityDate)
	assert.False(t, upd.WasBroken)
}

func TestApplyStreakActivity_SameDayIsIdempotent(t *testing.T) {
	last := day("2026-09-01")
	p := progressWith(4, 9, &last)

	// A later timestamp on the same calendar day changes nothing.
	upd := engine.ApplyStreakActivity(p, day("2026-09-01").Add(22*time.Hour))

	assert.Equal(t, 4, upd.CurrentStreak)
	assert.Equal(t, 9, upd.BestStreak)
	assert.False(t, upd.Extended)
}

func TestApplyStreakActivity_NextDayIncrements(t *testing.T) {
	last := day("2026-08-31")
	p := progressWith(5, 9, &last)

	upd := engine.ApplyStreakActivity(p, day("2026-09-01"))

	assert.Equal(t, 6, upd.CurrentStreak)
	assert.Equal(t, 9, upd.BestStreak, "best unchanged while current is below it")
	assert.True(t, upd.Extended)
}

func TestApplyStreakActivity_NextDayRaisesBest(t *testing.T) {
	last := day("2026-08-31")
	p := progressWith(9, 9, &last)

	upd := engine.ApplyStreakActivity(p, day("2026-09-01"))

	assert.Equal(t, 10, upd.CurrentStreak)
	assert.Equal(t, 10, upd.BestStreak)
}

func TestApplyStreakActivity_MidnightBoundary(t *testing.T) {
	// 23:59 then 00:01 the next day are consecutive calendar days.
	last := day("2026-08-31").Add(23*time.Hour + 59*time.Minute)
	p := progressWith(2, 2, &last)

	upd := engine.ApplyStreakActivity(p, day("2026-09-01").Add(1*time.Minute))

	assert.Equal(t, 3, upd.CurrentStreak)
}

func TestApplyStreakActivity_GapResets(t *testing.T) {
	last := day("2026-08-29")
	p := progressWith(5, 9, &last)

	// Three days later: streak back to 1, best untouched.
	upd := engine.ApplyStreakActivity(p, day("2026-09-01"))

	assert.Equal(t, 1, upd.CurrentStreak)
	assert.Equal(t, 9, upd.BestStreak)
	assert.True(t, upd.WasBroken)
}

func TestApplyStreakActivity_BackdatedTreatedAsGap(t *testing.T) {
	last := day("2026-09-05")
	p := progressWith(5, 9, &last)

	// Activity stamped before the last recorded day: defensive reset.
	upd := engine.ApplyStreakActivity(p, day("2026-09-01"))

	assert.Equal(t, 1, upd.CurrentStreak)
	assert.Equal(t, 9, upd.BestStreak)
}

func TestApplyStreakActivity_BestNeverBelowCurrent(t *testing.T) {
	last := day("2026-08-31")
	for _, p := range []models.UserProgress{
		progressWith(0, 0, nil),
		progressWith(3, 3, &last),
		progressWith(7, 12, &last),
	} {
		upd := engine.ApplyStreakActivity(p, day("2026-09-01"))
		require.GreaterOrEqual(t, upd.BestStreak, upd.CurrentStreak)
	}
}

func TestResetStaleStreak(t *testing.T) {
	last := day("2026-08-25")
	p := progressWith(6, 11, &last)

	reset := engine.ResetStaleStreak(p, day("2026-09-01"))

	require.True(t, reset.WasReset)
	assert.Equal(t, 0, reset.CurrentStreak)

	// Applying the result and checking again must be a no-op.
	p.CurrentStreak = reset.CurrentStreak
	again := engine.ResetStaleStreak(p, day("2026-09-01"))
	assert.False(t, again.WasReset)
	assert.Equal(t, 0, again.CurrentStreak)
	assert.Equal(t, 11, p.BestStreak, "best streak never reduced")
}

func TestResetStaleStreak_FreshStreakUntouched(t *testing.T) {
	yesterday := day("2026-08-31")
	p := progressWith(6, 11, &yesterday)

	reset := engine.ResetStaleStreak(p, day("2026-09-01"))

	assert.False(t, reset.WasReset)
	assert.Equal(t, 6, reset.CurrentStreak)

	today := day("2026-09-01")
	p.LastActivityDate = &today
	reset = engine.ResetStaleStreak(p, day("2026-09-01"))
	assert.False(t, reset.WasReset)
}

func TestResetStaleStreak_NoActivity(t *testing.T) {
	reset := engine.ResetStaleStreak(progressWith(0, 0, nil), day("2026-09-01"))
	assert.False(t, reset.WasReset)
	assert.Equal(t, 0, reset.CurrentStreak)
}
