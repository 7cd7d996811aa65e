package calib

import "sort"

const (
	// MinFeatureSupport is the minimum row frequency a feature needs to enter
	// the vocabulary.
	MinFeatureSupport = 2
	// MinFeaturesToUse is the cliff below which training falls back to the
	// base predictors only. Intentional hard cutoff, not a graceful
	// degradation.
	MinFeaturesToUse = 5
	// DefaultMaxFeatures caps the vocabulary size.
	DefaultMaxFeatures = 30
)

// Selection is the chosen per-user indicator vocabulary. Keys are ordered by
// descending frequency; UseFeatures false means base-predictors-only.
type Selection struct {
	Keys        []string
	UseFeatures bool
}

// SelectFeatures picks the indicator vocabulary from the labeled rows. The
// effective cap shrinks with the training set: min(maxFeatures, N/2).
func SelectFeatures(rows []Row, maxFeatures int) Selection {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	dynamicMax := len(rows) / 2
	if maxFeatures < dynamicMax {
		dynamicMax = maxFeatures
	}
	if dynamicMax <= 0 {
		return Selection{Keys: []string{}, UseFeatures: false}
	}

	freq := make(map[string]int)
	for _, row := range rows {
		seen := make(map[string]struct{}, len(row.FeatureKeys))
		for _, key := range row.FeatureKeys {
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			freq[key]++
		}
	}

	survivors := make([]string, 0, len(freq))
	for key, n := range freq {
		if n >= MinFeatureSupport {
			survivors = append(survivors, key)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		if freq[survivors[i]] != freq[survivors[j]] {
			return freq[survivors[i]] > freq[survivors[j]]
		}
		return survivors[i] < survivors[j]
	})
	if len(survivors) > dynamicMax {
		survivors = survivors[:dynamicMax]
	}

	if len(survivors) < MinFeaturesToUse {
		return Selection{Keys: []string{}, UseFeatures: false}
	}
	return Selection{Keys: survivors, UseFeatures: true}
}
