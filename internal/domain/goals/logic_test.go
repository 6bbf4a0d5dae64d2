package goals

import "testing"

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		current, target, want float64
	}{
		{50, 100, 50},
		{100, 100, 100},
		{150, 100, 100},
		{-10, 100, 0},
		{10, 0, 0},
	}
	for _, c := range cases {
		if got := ProgressPercent(c.current, c.target); got != c.want {
			t.Fatalf("ProgressPercent(%v,%v) = %v, want %v", c.current, c.target, got, c.want)
		}
	}
}

func TestFinalScore(t *testing.T) {
	items := []Goal{
		{CurrentValue: 80, TargetValue: 100, Weight: 40},
		{CurrentValue: 90, TargetValue: 100, Weight: 30},
		{CurrentValue: 70, TargetValue: 100, Weight: 15},
		{CurrentValue: 85, TargetValue: 100, Weight: 15},
	}
	if got := FinalScore(items); got != 82 {
		t.Fatalf("expected 82, got %v", got)
	}
}

func TestFinalScoreNoGoals(t *testing.T) {
	if got := FinalScore(nil); got != 0 {
		t.Fatalf("expected 0 with no goals, got %v", got)
	}
}
