package scoring

import "testing"

func TestAggregate(t *testing.T) {
	items := []WeightedScore{
		{Score: 80, Weight: 40},
		{Score: 90, Weight: 30},
		{Score: 70, Weight: 15},
		{Score: 85, Weight: 15},
	}
	// 0.4*80 + 0.3*90 + 0.15*70 + 0.15*85 = 82.25, rounds to 82.
	if got := Aggregate(items); got != 82 {
		t.Fatalf("expected 82, got %v", got)
	}
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	items := []WeightedScore{
		{Score: 80, Weight: 1},
		{Score: 81, Weight: 1},
	}
	if got := Aggregate(items); got != 81 {
		t.Fatalf("expected 80.5 to round to 81, got %v", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestAggregateZeroWeight(t *testing.T) {
	items := []WeightedScore{{Score: 50, Weight: 0}}
	if got := Aggregate(items); got != 0 {
		t.Fatalf("expected 0 for zero total weight, got %v", got)
	}
}

func TestAggregateBounds(t *testing.T) {
	cases := [][]WeightedScore{
		{{Score: 0, Weight: 10}, {Score: 0, Weight: 90}},
		{{Score: 100, Weight: 50}, {Score: 100, Weight: 50}},
		{{Score: 33, Weight: 7}, {Score: 91, Weight: 3}},
	}
	for _, items := range cases {
		got := Aggregate(items)
		if got < 0 || got > 100 {
			t.Fatalf("aggregate %v out of [0,100] for %v", got, items)
		}
	}
}
