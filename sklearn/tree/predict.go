package tree

import (
	"github.com/YuminosukeSato/scitree/core/parallel"
	"gonum.org/v1/gonum/floats"
)

// substitution makes the predictor read with in place of the subtree rooted
// at at, without modifying the tree.
type substitution[L comparable] struct {
	at   *Internal[L]
	with Node[L]
}

func (s *substitution[L]) resolve(n Node[L]) Node[L] {
	if s == nil {
		return n
	}
	if in, ok := n.(*Internal[L]); ok && in == s.at {
		return s.with
	}
	return n
}

// next returns the child a row is routed to, or nil when the value at the
// split feature is missing or not comparable with the threshold.
func (n *Internal[L]) next(row []Value) Node[L] {
	v := row[n.Feature]
	if v.IsMissing() {
		return nil
	}
	left, ok := n.goesLeft(v)
	switch {
	case !ok:
		return nil
	case left:
		return n.Left
	default:
		return n.Right
	}
}

// predictRow walks the tree for one row. A missing value predicts through
// both children and keeps the majority of the two answers; ties go to the
// left child.
func predictRow[L comparable](n Node[L], row []Value, sub *substitution[L]) L {
	for {
		n = sub.resolve(n)
		switch node := n.(type) {
		case *Leaf[L]:
			return node.Label
		case *Internal[L]:
			if child := node.next(row); child != nil {
				n = child
				continue
			}
			votes := []L{
				predictRow(node.Left, row, sub),
				predictRow(node.Right, row, sub),
			}
			label, _ := majorityLabel(votes)
			return label
		default:
			panic("tree: unknown node type")
		}
	}
}

// predictBatch predicts every row. Large batches are spread over goroutines;
// each row only writes its own slot.
func predictBatch[L comparable](root Node[L], samples Table, sub *substitution[L]) []L {
	out := make([]L, len(samples))
	parallel.ParallelizeWithThreshold(len(samples), parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = predictRow(root, samples[i], sub)
		}
	})
	return out
}

// predictDistribution returns the class frequencies of the leaf a row
// reaches. For a missing value it averages the distributions of both
// children.
func predictDistribution[L comparable](n Node[L], row []Value, nClasses int) []float64 {
	switch node := n.(type) {
	case *Leaf[L]:
		dist := make([]float64, nClasses)
		for i, c := range node.Counts {
			dist[i] = float64(c)
		}
		if node.Samples > 0 {
			floats.Scale(1/float64(node.Samples), dist)
		}
		return dist
	case *Internal[L]:
		if child := node.next(row); child != nil {
			return predictDistribution(child, row, nClasses)
		}
		dist := predictDistribution(node.Left, row, nClasses)
		floats.Add(dist, predictDistribution(node.Right, row, nClasses))
		floats.Scale(0.5, dist)
		return dist
	default:
		panic("tree: unknown node type")
	}
}
