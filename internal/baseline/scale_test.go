package baseline

import "testing"

func TestPHQ9SeverityBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "minimal"}, {4, "minimal"},
		{5, "mild"}, {9, "mild"},
		{10, "moderate"}, {14, "moderate"},
		{15, "moderately severe"}, {19, "moderately severe"},
		{20, "severe"}, {27, "severe"},
	}
	for _, tc := range cases {
		if got := PHQ9.SeverityBand(tc.score); got != tc.want {
			t.Fatalf("phq9 band(%d): got %q want %q", tc.score, got, tc.want)
		}
	}
}

func TestReliableChangeThresholds(t *testing.T) {
	if got := PHQ9.ReliableChange(15, 9); got != "improved" {
		t.Fatalf("phq9 drop of 6 (exact threshold): got %q", got)
	}
	if got := PHQ9.ReliableChange(9, 15); got != "worsened" {
		t.Fatalf("phq9 rise of 6 (exact threshold): got %q", got)
	}
	if got := PHQ9.ReliableChange(10, 5); got != "stable" {
		t.Fatalf("phq9 drop of 5: got %q", got)
	}
	if got := GAD7.ReliableChange(10, 6); got != "improved" {
		t.Fatalf("gad7 drop of 4 (exact threshold): got %q", got)
	}
	if got := GAD7.ReliableChange(6, 9); got != "stable" {
		t.Fatalf("gad7 rise of 3: got %q", got)
	}
}

func TestScaleFromZStaysInRange(t *testing.T) {
	for _, s := range []Scale{PHQ9, GAD7} {
		for _, z := range []float64{-10, -ZClamp, -1, 0, 1, ZClamp, 10} {
			got := s.FromZ(z)
			if got < s.Min || got > s.Max {
				t.Fatalf("%s.FromZ(%v) out of range: %d", s.Name, z, got)
			}
		}
		if s.FromZ(-ZClamp) >= s.FromZ(ZClamp) {
			t.Fatalf("%s mapping should be monotone", s.Name)
		}
	}
}
