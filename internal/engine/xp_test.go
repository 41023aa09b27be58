package engine

import (
	"testing"

	"github.com/quizhive/backend/internal/apperr"
	"github.com/quizhive/backend/internal/models"
)

func TestComputeXP_PerfectAdvancedUntimed(t *testing.T) {
	// 10-question advanced quiz, 100%, untimed, no streak:
	// 30 * 1.5 = 45, +50 perfect = 95, *1.0 scaling = 95.
	e := New(DefaultConfig())

	res, err := e.ComputeXP(XPInput{
		Difficulty:    models.DifficultyAdvanced,
		Percentage:    100,
		QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("ComputeXP returned error: %v", err)
	}
	if res.FinalXP != 95 {
		t.Errorf("FinalXP = %d, want 95", res.FinalXP)
	}
	b := res.Breakdown
	if b.BaseXP != 30 || b.ScoreMultiplier != 1.5 || b.TimeMultiplier != 1.0 ||
		b.StreakBonus != 0 || b.PerfectScoreBonus != 50 || b.QuestionScaling != 1.0 {
		t.Errorf("unexpected breakdown: %+v", b)
	}
}

func TestComputeXP_ShortBeginnerFloorsAtMin(t *testing.T) {
	// 5-question beginner quiz, 80%, 40s of a 100s limit (×1.25),
	// 7-day streak (+20%): 10*1.0*1.25*1.2 = 15, *0.5 scaling = 7.5,
	// rounds to 8, floored to MinXP 25.
	e := New(DefaultConfig())

	res, err := e.ComputeXP(XPInput{
		Difficulty:       models.DifficultyBeginner,
		Percentage:       80,
		TimeLimitSeconds: 100,
		TimeTakenSeconds: 40,
		CurrentStreak:    7,
		QuestionCount:    5,
	})
	if err != nil {
		t.Fatalf("ComputeXP returned error: %v", err)
	}
	if res.FinalXP != 25 {
		t.Errorf("FinalXP = %d, want MinXP 25", res.FinalXP)
	}
	if res.Breakdown.PerfectScoreBonus != 0 {
		t.Errorf("PerfectScoreBonus = %d, want 0 for 80%%", res.Breakdown.PerfectScoreBonus)
	}
}

func TestComputeXP_NeverBelowFloor(t *testing.T) {
	e := New(DefaultConfig())

	// Worst case on every axis.
	res, err := e.ComputeXP(XPInput{
		Difficulty:       models.DifficultyBeginner,
		Percentage:       0,
		TimeLimitSeconds: 60,
		TimeTakenSeconds: 600,
		QuestionCount:    1,
	})
	if err != nil {
		t.Fatalf("ComputeXP returned error: %v", err)
	}
	if res.FinalXP != 25 {
		t.Errorf("FinalXP = %d, want floor 25", res.FinalXP)
	}
	if res.FinalXP < 0 {
		t.Errorf("FinalXP = %d, must never be negative", res.FinalXP)
	}
}

func TestComputeXP_StreakBonusApplied(t *testing.T) {
	e := New(DefaultConfig())

	// 10-question advanced, 90%, untimed, 30-day streak:
	// 30 * 1.25 * 1.0 * 1.5 = 56.25 → 56.
	res, err := e.ComputeXP(XPInput{
		Difficulty:    models.DifficultyAdvanced,
		Percentage:    90,
		CurrentStreak: 30,
		QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("ComputeXP returned error: %v", err)
	}
	if res.FinalXP != 56 {
		t.Errorf("FinalXP = %d, want 56", res.FinalXP)
	}
}

func TestComputeXP_ValidationErrors(t *testing.T) {
	e := New(DefaultConfig())

	valid := XPInput{
		Difficulty:    models.DifficultyBeginner,
		Percentage:    50,
		QuestionCount: 10,
	}

	tests := []struct {
		name   string
		mutate func(*XPInput)
	}{
		{"percentage above 100", func(in *XPInput) { in.Percentage = 101 }},
		{"negative percentage", func(in *XPInput) { in.Percentage = -1 }},
		{"negative time limit", func(in *XPInput) { in.TimeLimitSeconds = -60 }},
		{"zero question count", func(in *XPInput) { in.QuestionCount = 0 }},
		{"negative streak", func(in *XPInput) { in.CurrentStreak = -1 }},
		{"unknown difficulty", func(in *XPInput) { in.Difficulty = "nightmare" }},
	}

	for _, tt := range tests {
		in := valid
		tt.mutate(&in)
		if _, err := e.ComputeXP(in); !apperr.IsValidation(err) {
			t.Errorf("%s: got err %v, want validation error", tt.name, err)
		}
	}

	// Negative timeTaken is clamp-tolerant, not an error.
	in := valid
	in.TimeLimitSeconds = 100
	in.TimeTakenSeconds = -5
	if _, err := e.ComputeXP(in); err != nil {
		t.Errorf("negative timeTaken should clamp, got error: %v", err)
	}
}

func TestComputeXP_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinXP = 1
	cfg.PerfectScoreBonus = 0
	e := New(cfg)

	// Without the perfect bonus or a meaningful floor, the raw product shows.
	res, err := e.ComputeXP(XPInput{
		Difficulty:    models.DifficultyBeginner,
		Percentage:    100,
		QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("ComputeXP returned error: %v", err)
	}
	if res.FinalXP != 15 { // 10 * 1.5
		t.Errorf("FinalXP = %d, want 15", res.FinalXP)
	}
}
