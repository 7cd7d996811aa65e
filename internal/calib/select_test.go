package calib

import (
	"fmt"
	"testing"
)

func rowsWithFeature(n int, key string, mentions int) []Row {
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		if i < mentions {
			rows[i].FeatureKeys = []string{key}
		}
	}
	return rows
}

func TestDynamicMaxScalesWithRows(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{10, 5},
		{20, 10},
		{100, 30},
	}
	for _, tc := range cases {
		// Seed more always-mentioned features than the cap allows.
		rows := make([]Row, tc.n)
		for i := range rows {
			for f := 0; f < 40; f++ {
				rows[i].FeatureKeys = append(rows[i].FeatureKeys, fmt.Sprintf("theme:f%02d", f))
			}
		}
		sel := SelectFeatures(rows, DefaultMaxFeatures)
		if !sel.UseFeatures {
			t.Fatalf("n=%d: expected features in use", tc.n)
		}
		if len(sel.Keys) != tc.want {
			t.Fatalf("n=%d: got %d keys, want %d", tc.n, len(sel.Keys), tc.want)
		}
	}
}

func TestSingleSupportAlwaysExcluded(t *testing.T) {
	rows := rowsWithFeature(20, "symptom:insomnia", 1)
	for i := range rows {
		for f := 0; f < 6; f++ {
			rows[i].FeatureKeys = append(rows[i].FeatureKeys, fmt.Sprintf("theme:common%d", f))
		}
	}
	sel := SelectFeatures(rows, DefaultMaxFeatures)
	for _, k := range sel.Keys {
		if k == "symptom:insomnia" {
			t.Fatal("support=1 feature must be excluded")
		}
	}
}

func TestFallbackWhenTooFewSurvive(t *testing.T) {
	rows := make([]Row, 20)
	for i := range rows {
		rows[i].FeatureKeys = []string{"theme:a", "theme:b", "theme:c"}
	}
	sel := SelectFeatures(rows, DefaultMaxFeatures)
	if sel.UseFeatures {
		t.Fatal("3 survivors must trigger base-only fallback")
	}
	if len(sel.Keys) != 0 {
		t.Fatalf("fallback must empty the vocabulary, got %v", sel.Keys)
	}
}

func TestSixSurvivorsUsed(t *testing.T) {
	rows := make([]Row, 20)
	for i := range rows {
		for f := 0; f < 6; f++ {
			rows[i].FeatureKeys = append(rows[i].FeatureKeys, fmt.Sprintf("stressor:s%d", f))
		}
	}
	sel := SelectFeatures(rows, DefaultMaxFeatures)
	if !sel.UseFeatures || len(sel.Keys) != 6 {
		t.Fatalf("6 survivors should be used, got use=%v keys=%v", sel.UseFeatures, sel.Keys)
	}
}

func TestFrequencyOrdering(t *testing.T) {
	rows := make([]Row, 20)
	for i := range rows {
		rows[i].FeatureKeys = append(rows[i].FeatureKeys, "theme:everywhere")
		if i < 10 {
			rows[i].FeatureKeys = append(rows[i].FeatureKeys, "theme:half")
		}
		for f := 0; f < 4; f++ {
			rows[i].FeatureKeys = append(rows[i].FeatureKeys, fmt.Sprintf("theme:fill%d", f))
		}
	}
	sel := SelectFeatures(rows, DefaultMaxFeatures)
	if !sel.UseFeatures {
		t.Fatal("expected features in use")
	}
	if sel.Keys[0] != "theme:everywhere" {
		t.Fatalf("most frequent feature must come first, got %v", sel.Keys)
	}
}

func TestDuplicateMentionsInRowCountOnce(t *testing.T) {
	rows := make([]Row, 10)
	rows[0].FeatureKeys = []string{"theme:dup", "theme:dup", "theme:dup"}
	sel := SelectFeatures(rows, DefaultMaxFeatures)
	for _, k := range sel.Keys {
		if k == "theme:dup" {
			t.Fatal("within-row duplicates must not count as support")
		}
	}
}
