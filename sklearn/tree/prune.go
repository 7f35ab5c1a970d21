package tree

import (
	"slices"

	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// pruner performs reduced-error pruning against a validation set.
type pruner[L comparable] struct {
	root      *Node[L]
	samples   Table
	labels    []L
	collapsed int
	logger    log.Logger
}

// pruneTree collapses, bottom-up, every internal node whose children are
// both leaves when doing so does not increase the validation error of the
// whole tree. It returns the number of collapsed nodes. An empty validation
// set leaves the tree untouched.
func pruneTree[L comparable](root *Node[L], samples Table, labels []L) int {
	if len(samples) == 0 {
		return 0
	}
	p := &pruner[L]{
		root:    root,
		samples: samples,
		labels:  labels,
		logger:  log.GetLoggerWithName("tree.pruner"),
	}
	p.visit(root)
	return p.collapsed
}

// visit decides the node held by slot after deciding its children. A
// collapse is committed by replacing the slot's content.
func (p *pruner[L]) visit(slot *Node[L]) {
	in, ok := (*slot).(*Internal[L])
	if !ok {
		return
	}
	p.visit(&in.Left)
	p.visit(&in.Right)

	if !in.Left.IsLeaf() || !in.Right.IsLeaf() {
		return
	}

	candidate := p.candidate(in)
	before := p.errors(nil)
	after := p.errors(&substitution[L]{at: in, with: candidate})
	if after > before {
		return
	}

	*slot = candidate
	p.collapsed++
	p.logger.Debug("node collapsed",
		log.FeatureIndexKey, in.Feature,
		log.ErrorCountKey, after,
	)
}

// candidate builds the leaf that would replace in. Its label is the majority
// of the validation labels whose row is not missing at in's feature, or of
// all validation labels when no row qualifies. Its distribution is the
// node's own, which includes training rows missing at the feature.
func (p *pruner[L]) candidate(in *Internal[L]) *Leaf[L] {
	eligible := make([]L, 0, len(p.labels))
	for i, row := range p.samples {
		if !row[in.Feature].IsMissing() {
			eligible = append(eligible, p.labels[i])
		}
	}
	label, ok := majorityLabel(eligible)
	if !ok {
		label, _ = majorityLabel(p.labels)
	}

	return &Leaf[L]{Label: label, Samples: in.Samples, Counts: slices.Clone(in.Counts)}
}

// errors counts validation mismatches of the whole tree, optionally with a
// subtree substituted.
func (p *pruner[L]) errors(sub *substitution[L]) float64 {
	predicted := predictBatch(*p.root, p.samples, sub)
	count, _ := metrics.ZeroOneLoss(p.labels, predicted, false)
	return count
}
