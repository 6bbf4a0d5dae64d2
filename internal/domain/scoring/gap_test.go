package scoring

import "testing"

func TestClassifyGap(t *testing.T) {
	cases := []struct {
		required, current int
		want              GapCategory
	}{
		{4, 4, GapMeets},
		{4, 5, GapMeets},
		{2, 6, GapMeets},
		{4, 3, GapClose},
		{4, 2, GapSignificant},
		{5, 1, GapSignificant},
		{0, -2, GapSignificant},
	}
	for _, c := range cases {
		if got := ClassifyGap(c.required, c.current); got != c.want {
			t.Fatalf("ClassifyGap(%d,%d) = %q, want %q", c.required, c.current, got, c.want)
		}
	}
}
