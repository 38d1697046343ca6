package domain

import "iter"

// FeatureIndex is an ordered, read-only collection of features.
// It is safe for concurrent use because it is never mutated after construction.
type FeatureIndex struct {
	features []Feature
}

// NewFeatureIndex copies features into a new index, preserving order.
func NewFeatureIndex(features []Feature) *FeatureIndex {
	fs := make([]Feature, len(features))
	copy(fs, features)
	return &FeatureIndex{features: fs}
}

// Len returns the number of indexed features.
func (ix *FeatureIndex) Len() int {
	return len(ix.features)
}

// Lookup returns the first feature located exactly at p.
func (ix *FeatureIndex) Lookup(p Point) (Feature, bool) {
	for _, f := range ix.features {
		if f.Location == p {
			return f, true
		}
	}
	return Feature{}, false
}

// Within yields, in index order, every feature inside r (edges included).
// Scanning stops as soon as the consumer stops iterating.
func (ix *FeatureIndex) Within(r Rectangle) iter.Seq[Feature] {
	return func(yield func(Feature) bool) {
		bound := r.Bound()
		for _, f := range ix.features {
			if !bound.Contains(f.Location.Orb()) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}
