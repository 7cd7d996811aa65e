package mood

import "testing"

func TestNormalizeFeatureName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Work Stress", want: "work stress"},
		{name: "trim", in: "  insomnia  ", want: "insomnia"},
		{name: "collapse_whitespace", in: "poor \t  sleep", want: "poor sleep"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeFeatureName(tc.in); got != tc.want {
				t.Fatalf("NormalizeFeatureName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalFeatureKey(t *testing.T) {
	if got := CanonicalFeatureKey("Theme", "  Work   Stress "); got != "theme:work stress" {
		t.Fatalf("key = %q", got)
	}
	// Same key regardless of surface form, so dedup works.
	a := CanonicalFeatureKey("symptom", "Low Energy")
	b := CanonicalFeatureKey("SYMPTOM", "low   energy")
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}
