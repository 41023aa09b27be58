package engine

import (
	"time"

	"github.com/quizhive/backend/internal/models"
)

// StreakUpdate is the result of recording activity: the new streak
// fields the caller should persist.
type StreakUpdate struct {
	CurrentStreak    int
	BestStreak       int
	LastActivityDate time.Time
	Extended         bool
	WasBroken        bool
}

// StreakReset is the result of the lazy stale-streak check.
type StreakReset struct {
	WasReset      bool
	CurrentStreak int
}

// ApplyStreakActivity runs the daily-streak state machine for "activity
// recorded now". Calendar days, not 24h windows: two attempts a minute
// apart across midnight are consecutive days.
//
//	no prior activity  → streak 1, best max(best, 1)
//	same day           → no change, refresh last activity
//	next day           → streak+1, best raised if exceeded
//	gap (or backdated) → streak resets to 1, best untouched
//
// A negative day diff means clock skew or a backdated record; it is
// treated as a gap. Pure function — the caller persists the result.
func ApplyStreakActivity(p models.UserProgress, now time.Time) StreakUpdate {
	today := dateOnly(now)

	if p.LastActivityDate == nil {
		best := p.BestStreak
		if best < 1 {
			best = 1
		}
		return StreakUpdate{CurrentStreak: 1, BestStreak: best, LastActivityDate: today}
	}

	switch diff := daysBetween(*p.LastActivityDate, now); {
	case diff == 0:
		return StreakUpdate{
			CurrentStreak:    p.CurrentStreak,
			BestStreak:       p.BestStreak,
			LastActivityDate: today,
		}
	case diff == 1:
		current := p.CurrentStreak + 1
		best := p.BestStreak
		if current > best {
			best = current
		}
		return StreakUpdate{
			CurrentStreak:    current,
			BestStreak:       best,
			LastActivityDate: today,
			Extended:         true,
		}
	default:
		return StreakUpdate{
			CurrentStreak:    1,
			BestStreak:       maxInt(p.BestStreak, 1),
			LastActivityDate: today,
			WasBroken:        p.CurrentStreak > 1,
		}
	}
}

// ResetStaleStreak zeroes a streak whose last activity is more than one
// day old, without recording new activity. Used on dashboard reads so a
// lapsed streak shows as 0 before the user plays again. Idempotent:
// once zeroed, repeated calls report WasReset=false. Never touches
// BestStreak or LastActivityDate.
func ResetStaleStreak(p models.UserProgress, now time.Time) StreakReset {
	if p.LastActivityDate == nil || p.CurrentStreak == 0 {
		return StreakReset{CurrentStreak: p.CurrentStreak}
	}
	if daysBetween(*p.LastActivityDate, now) > 1 {
		return StreakReset{WasReset: true, CurrentStreak: 0}
	}
	return StreakReset{CurrentStreak: p.CurrentStreak}
}

// dateOnly strips the time of day, keeping the timestamp's own calendar
// date. Day granularity is deliberately timezone-naive.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a's date to b's date.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
