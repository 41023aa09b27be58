package engine

import "testing"

func TestScoreMultiplier(t *testing.T) {
	tests := []struct {
		percentage int
		want       float64
	}{
		{0, 0.25},
		{49, 0.25},
		{50, 0.75},
		{69, 0.75},
		{70, 1.0},
		{89, 1.0},
		{90, 1.25},
		{99, 1.25},
		{100, 1.5},
	}

	for _, tt := range tests {
		got := ScoreMultiplier(tt.percentage)
		if got != tt.want {
			t.Errorf("ScoreMultiplier(%d) = %v, want %v", tt.percentage, got, tt.want)
		}
	}

	// Monotonically non-decreasing across the whole range.
	prev := ScoreMultiplier(0)
	for p := 1; p <= 100; p++ {
		cur := ScoreMultiplier(p)
		if cur < prev {
			t.Errorf("ScoreMultiplier not monotonic at %d: %v < %v", p, cur, prev)
		}
		prev = cur
	}
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		limit, taken int
		want         float64
	}{
		{100, 0, 1.5},
		{100, 29, 1.5},
		{100, 30, 1.25}, // ratio exactly 0.3 falls to the next band
		{100, 49, 1.25},
		{100, 50, 1.0},
		{100, 79, 1.0},
		{100, 80, 0.75},
		{100, 100, 0.75},
		{100, 500, 0.75},
		{100, -20, 1.5}, // negative taken clamps to 0
	}

	for _, tt := range tests {
		got := TimeMultiplier(tt.limit, tt.taken)
		if got != tt.want {
			t.Errorf("TimeMultiplier(%d, %d) = %v, want %v", tt.limit, tt.taken, got, tt.want)
		}
	}

	// Untimed quizzes are always neutral.
	if got := TimeMultiplier(0, 40); got != 1.0 {
		t.Errorf("TimeMultiplier(0, 40) = %v, want 1.0", got)
	}
	if got := TimeMultiplier(-60, 40); got != 1.0 {
		t.Errorf("TimeMultiplier(-60, 40) = %v, want 1.0", got)
	}
}

func TestStreakBonus(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		streak int
		want   float64
	}{
		{-3, 0},
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 0.10},
		{6, 0.10},
		{7, 0.20},
		{13, 0.20},
		{14, 0.35},
		{29, 0.35},
		{30, 0.50},
		{365, 0.50}, // top tier is the cap
	}

	for _, tt := range tests {
		got := e.StreakBonus(tt.streak)
		if got != tt.want {
			t.Errorf("StreakBonus(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestQuestionCountScaling(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{1, 0.5}, // floored
		{4, 0.5}, // floored
		{5, 0.5}, // 5/10, no floor needed
		{8, 0.8},
		{10, 1.0},
		{20, 2.0},
	}

	for _, tt := range tests {
		got := QuestionCountScaling(tt.count)
		if got != tt.want {
			t.Errorf("QuestionCountScaling(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
