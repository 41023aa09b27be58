package quizzes

import (
	"reflect"
	"testing"
)

func TestNormalizeAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		count   int
		want    []int
	}{
		{"exact length", []int{0, 2, 1}, 3, []int{0, 2, 1}},
		{"short list padded", []int{0}, 3, []int{0, -1, -1}},
		{"nil padded", nil, 2, []int{-1, -1}},
		{"extra answers dropped", []int{0, 1, 2, 3}, 2, []int{0, 1}},
	}

	for _, tt := range tests {
		got := normalizeAnswers(tt.answers, tt.count)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: normalizeAnswers(%v, %d) = %v, want %v", tt.name, tt.answers, tt.count, got, tt.want)
		}
	}
}
