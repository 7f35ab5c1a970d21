package tree

import (
	"context"

	"github.com/YuminosukeSato/scitree/pkg/log"
)

// builder grows a tree by recursive partitioning of row indices.
type builder[L comparable] struct {
	splitter
	classes         []L
	names           []string
	maxDepth        int // -1 means unbounded
	minSamplesSplit int
	logger          log.Logger
}

func newBuilder[L comparable](cfg *config, samples Table, labels []L, names []string) *builder[L] {
	classes, codes := encodeLabels(labels)
	impurity, _ := criterionByName(cfg.criterion)
	return &builder[L]{
		splitter: splitter{
			samples:        samples,
			codes:          codes,
			nClasses:       len(classes),
			impurity:       impurity,
			minSamplesLeaf: cfg.minSamplesLeaf,
		},
		classes:         classes,
		names:           names,
		maxDepth:        cfg.maxDepth,
		minSamplesSplit: cfg.minSamplesSplit,
		logger:          log.GetLoggerWithName("tree.builder"),
	}
}

// encodeLabels maps labels to class indices assigned in first-encountered order.
func encodeLabels[L comparable](labels []L) (classes []L, codes []int) {
	index := make(map[L]int)
	codes = make([]int, len(labels))
	for i, l := range labels {
		c, ok := index[l]
		if !ok {
			c = len(classes)
			index[l] = c
			classes = append(classes, l)
		}
		codes[i] = c
	}
	return classes, codes
}

func (b *builder[L]) build() Node[L] {
	rows := make([]int, len(b.codes))
	for i := range rows {
		rows[i] = i
	}
	return b.grow(rows, 0)
}

func (b *builder[L]) grow(rows []int, depth int) Node[L] {
	counts := b.counts(rows)

	if b.maxDepth >= 0 && depth >= b.maxDepth {
		return b.leaf(rows, counts)
	}
	if isPure(counts) {
		return b.leaf(rows, counts)
	}
	if len(rows) < b.minSamplesSplit {
		return b.leaf(rows, counts)
	}

	best, ok := b.best(rows)
	if !ok {
		return b.leaf(rows, counts)
	}

	if b.logger.Enabled(context.Background(), log.LevelDebug) {
		b.logger.Debug("split accepted",
			log.TreeDepthKey, depth,
			log.FeatureIndexKey, best.feature,
			log.ThresholdKey, best.threshold.String(),
			log.GainKey, best.gain,
			log.SamplesKey, len(rows),
		)
	}

	node := &Internal[L]{
		Feature:   best.feature,
		Kind:      best.kind,
		Threshold: best.threshold,
		Gain:      best.gain,
		Samples:   len(rows),
		Counts:    counts,
	}
	if best.feature < len(b.names) {
		node.Name = b.names[best.feature]
	}
	node.Left = b.grow(best.left, depth+1)
	node.Right = b.grow(best.right, depth+1)
	return node
}

// leaf labels the node with the mode of its rows; ties go to the label seen
// first among those rows.
func (b *builder[L]) leaf(rows []int, counts []int) *Leaf[L] {
	best := -1
	for _, r := range rows {
		c := b.codes[r]
		if best < 0 || counts[c] > counts[best] {
			best = c
		}
	}
	return &Leaf[L]{Label: b.classes[best], Samples: len(rows), Counts: counts}
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
