package tree

import (
	"math"
	"slices"
)

// minGain absorbs floating point noise when comparing a gain with zero.
const minGain = 1e-12

// split is a candidate partition of a node's rows. Rows missing at the
// feature belong to neither side.
type split struct {
	feature   int
	kind      FeatureKind
	threshold Value
	gain      float64
	left      []int
	right     []int
}

// splitter searches every feature of a node for the split with the largest
// impurity reduction.
type splitter struct {
	samples        Table
	codes          []int // class index of every training row
	nClasses       int
	impurity       criterionFunc
	minSamplesLeaf int
}

func (s *splitter) counts(rows []int) []int {
	counts := make([]int, s.nClasses)
	for _, r := range rows {
		counts[s.codes[r]]++
	}
	return counts
}

// featureKind decides once how feature f is split at this node: continuous
// when every observed value is a number, categorical as soon as one token
// shows up. ok is false when every row is missing at f.
func (s *splitter) featureKind(rows []int, f int) (kind FeatureKind, ok bool) {
	for _, r := range rows {
		v := s.samples[r][f]
		switch {
		case v.IsCategory():
			return Categorical, true
		case v.IsNumber():
			ok = true
		}
	}
	return Continuous, ok
}

// thresholds lists the candidate thresholds of feature f in generation
// order: midpoints between consecutive distinct sorted numbers, or distinct
// observed values in first-encountered order.
func (s *splitter) thresholds(rows []int, f int, kind FeatureKind) []Value {
	if kind == Categorical {
		var out []Value
		for _, r := range rows {
			v := s.samples[r][f]
			if v.IsMissing() || slices.ContainsFunc(out, v.Equal) {
				continue
			}
			out = append(out, v)
		}
		return out
	}

	nums := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := s.samples[r][f]; v.IsNumber() {
			nums = append(nums, v.Float())
		}
	}
	slices.Sort(nums)
	nums = slices.Compact(nums)

	out := make([]Value, 0, len(nums))
	for i := 1; i < len(nums); i++ {
		mid := (nums[i-1] + nums[i]) / 2
		if math.IsInf(mid, 0) || math.IsNaN(mid) {
			// an infinite neighbour; the lower value yields the same partition under <=
			mid = nums[i-1]
		}
		out = append(out, Number(mid))
	}
	return out
}

// route applies a split test to a non-missing value.
func route(kind FeatureKind, threshold, v Value) (left, ok bool) {
	if kind == Continuous {
		if !v.IsNumber() {
			return false, false
		}
		return v.Float() <= threshold.Float(), true
	}
	return v.Equal(threshold), true
}

func (s *splitter) partition(rows []int, f int, kind FeatureKind, threshold Value) (left, right []int) {
	for _, r := range rows {
		v := s.samples[r][f]
		if v.IsMissing() {
			continue
		}
		goLeft, ok := route(kind, threshold, v)
		if !ok {
			continue
		}
		if goLeft {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

// best returns the split with the largest strictly positive gain. Ties keep
// the first candidate found (feature order, then threshold order).
func (s *splitter) best(rows []int) (split, bool) {
	parent := s.impurity(s.counts(rows), len(rows))
	nFeatures := len(s.samples[rows[0]])

	var best split
	found := false
	for f := 0; f < nFeatures; f++ {
		kind, ok := s.featureKind(rows, f)
		if !ok {
			continue
		}
		for _, t := range s.thresholds(rows, f, kind) {
			left, right := s.partition(rows, f, kind, t)
			if len(left) == 0 || len(right) == 0 ||
				len(left) < s.minSamplesLeaf || len(right) < s.minSamplesLeaf {
				continue
			}
			nl, nr := float64(len(left)), float64(len(right))
			child := (nl*s.impurity(s.counts(left), len(left)) +
				nr*s.impurity(s.counts(right), len(right))) / (nl + nr)
			gain := parent - child
			if !found || gain > best.gain {
				best = split{feature: f, kind: kind, threshold: t, gain: gain, left: left, right: right}
				found = true
			}
		}
	}
	if !found || best.gain <= minGain {
		return split{}, false
	}
	return best, true
}
