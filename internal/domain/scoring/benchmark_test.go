package scoring

import "testing"

func TestPercentile(t *testing.T) {
	population := []float64{60, 70, 75, 80, 85, 90, 95, 100}

	value, ok := Percentile(population, 50)
	if !ok {
		t.Fatal("expected a value for a non-empty population")
	}
	if value != 80 {
		t.Fatalf("expected p50 = 80, got %v", value)
	}
}

func TestPercentileEmpty(t *testing.T) {
	if _, ok := Percentile(nil, 50); ok {
		t.Fatal("expected no value for empty population")
	}
}

func TestPercentileBounds(t *testing.T) {
	population := []float64{42}
	for _, p := range []int{0, 50, 100} {
		value, ok := Percentile(population, p)
		if !ok || value != 42 {
			t.Fatalf("single-element population, p=%d: got %v ok=%v", p, value, ok)
		}
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	population := []float64{90, 10, 50}
	_, _ = Percentile(population, 50)
	if population[0] != 90 || population[1] != 10 || population[2] != 50 {
		t.Fatalf("input slice was mutated: %v", population)
	}
}

func TestClassifyPosition(t *testing.T) {
	cases := []struct {
		score float64
		want  BandCategory
	}{
		{95, BandTop10},
		{90, BandTop10},
		{80, BandTop25},
		{60, BandAboveAverage},
		{40, BandBelowAverage},
		{10, BandBottom25},
	}
	for _, c := range cases {
		if got := ClassifyPosition(c.score, 25, 50, 75, 90); got != c.want {
			t.Fatalf("ClassifyPosition(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
