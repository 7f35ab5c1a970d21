package tree

import "math"

// Supported split criteria.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// criterionFunc scores class counts over n samples.
type criterionFunc func(counts []int, n int) float64

func criterionByName(name string) (criterionFunc, bool) {
	switch name {
	case CriterionGini:
		return giniCounts, true
	case CriterionEntropy:
		return entropyCounts, true
	}
	return nil, false
}

// Gini returns 1 - sum(p_i^2) over the label frequencies. It returns 0 for
// an empty slice.
func Gini[L comparable](labels []L) float64 {
	_, counts := countLabels(labels)
	return giniCounts(counts, len(labels))
}

// Entropy returns -sum(p_i log2 p_i) over the label frequencies. It returns
// 0 for an empty slice.
func Entropy[L comparable](labels []L) float64 {
	_, counts := countLabels(labels)
	return entropyCounts(counts, len(labels))
}

func giniCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

func entropyCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

// countLabels returns the distinct labels in first-encountered order with
// their counts.
func countLabels[L comparable](labels []L) ([]L, []int) {
	index := make(map[L]int)
	var distinct []L
	var counts []int
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(distinct)
			index[l] = i
			distinct = append(distinct, l)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return distinct, counts
}

// majorityLabel returns the most frequent label. Ties go to the label
// encountered first. ok is false for an empty slice.
func majorityLabel[L comparable](labels []L) (label L, ok bool) {
	distinct, counts := countLabels(labels)
	best := -1
	for i, c := range counts {
		if best < 0 || c > counts[best] {
			best = i
		}
	}
	if best < 0 {
		return label, false
	}
	return distinct[best], true
}
