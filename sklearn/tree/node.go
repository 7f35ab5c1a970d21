package tree

import (
	"fmt"
	"strings"
)

// Node is a fitted tree node: either a *Leaf or an *Internal.
// Nodes returned by Classifier.Root must be treated as read-only.
type Node[L comparable] interface {
	IsLeaf() bool
	sealed(L)
}

// Leaf is a terminal node carrying the predicted class.
type Leaf[L comparable] struct {
	Label L `json:"label"`
	// Samples is the number of training samples that reached the node.
	Samples int `json:"samples"`
	// Counts is the training class distribution, indexed like Classifier.Classes.
	Counts []int `json:"counts"`
}

// Internal is a split node with exactly two children.
type Internal[L comparable] struct {
	Feature   int         `json:"feature_index"`
	Name      string      `json:"feature_name,omitempty"`
	Kind      FeatureKind `json:"kind"`
	Threshold Value       `json:"threshold"`
	Gain      float64     `json:"gain"`
	Samples   int         `json:"samples"`
	Counts    []int       `json:"counts"`
	Left      Node[L]     `json:"left"`
	Right     Node[L]     `json:"right"`
}

func (*Leaf[L]) IsLeaf() bool     { return true }
func (*Leaf[L]) sealed(L)         {}
func (*Internal[L]) IsLeaf() bool { return false }
func (*Internal[L]) sealed(L)     {}

// goesLeft routes a non-missing value. ok is false when the value cannot be
// compared with the threshold (a token at a continuous split), in which case
// the caller treats it like a missing value.
func (n *Internal[L]) goesLeft(v Value) (left, ok bool) {
	return route(n.Kind, n.Threshold, v)
}

func (n *Internal[L]) featureLabel() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("feature_%d", n.Feature)
}

// Rule renders the split test, e.g. "humidity <= 75" or "outlook == Sunny".
func (n *Internal[L]) Rule() string {
	op := "<="
	if n.Kind == Categorical {
		op = "=="
	}
	return fmt.Sprintf("%s %s %s", n.featureLabel(), op, n.Threshold)
}

func (n *Internal[L]) negatedRule() string {
	op := ">"
	if n.Kind == Categorical {
		op = "!="
	}
	return fmt.Sprintf("%s %s %s", n.featureLabel(), op, n.Threshold)
}

// depth returns the depth of the subtree (a single leaf has depth 0).
func depth[L comparable](n Node[L]) int {
	in, ok := n.(*Internal[L])
	if !ok {
		return 0
	}
	return 1 + max(depth(in.Left), depth(in.Right))
}

func countLeaves[L comparable](n Node[L]) int {
	in, ok := n.(*Internal[L])
	if !ok {
		return 1
	}
	return countLeaves(in.Left) + countLeaves(in.Right)
}

// writeText renders the subtree in the indented "|---" layout.
func writeText[L comparable](sb *strings.Builder, n Node[L], indent int) {
	prefix := strings.Repeat("|   ", indent) + "|--- "
	switch node := n.(type) {
	case *Leaf[L]:
		fmt.Fprintf(sb, "%sclass: %v (samples=%d)\n", prefix, node.Label, node.Samples)
	case *Internal[L]:
		sb.WriteString(prefix + node.Rule() + "\n")
		writeText(sb, node.Left, indent+1)
		sb.WriteString(prefix + node.negatedRule() + "\n")
		writeText(sb, node.Right, indent+1)
	}
}
