package tree

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"gonum.org/v1/gonum/floats"
)

// Classifier is a CART-style decision tree over mixed continuous,
// categorical and missing feature values, with labels of any comparable type.
//
// A Classifier is built once by Fit, optionally pruned, and then read-only:
// Predict may be called concurrently from several goroutines, but not
// concurrently with Fit or Prune.
type Classifier[L comparable] struct {
	config
	state *model.StateManager

	root    Node[L]
	classes []L
	names   []string

	modelName string
}

// NewClassifier creates an unfitted classifier.
func NewClassifier[L comparable](opts ...Option) *Classifier[L] {
	c := &Classifier[L]{
		config:    defaultConfig(),
		state:     model.NewStateManager("Classifier"),
		modelName: "Classifier",
	}
	for _, opt := range opts {
		opt(&c.config)
	}
	return c
}

// Fit builds the tree from samples and labels, discarding any previous tree.
// With WithValidation the new tree is pruned before Fit returns.
//
// Malformed input (an empty table, ragged rows, a label count that differs
// from the row count, a wrong number of feature names, invalid
// hyperparameters) is reported with an error matching errors.ErrInvalidInput.
func (c *Classifier[L]) Fit(samples Table, labels []L, opts ...FitOption) (err error) {
	defer errors.Recover(&err, "Classifier.Fit")

	var fo fitOptions
	for _, opt := range opts {
		opt(&fo)
	}

	names, err := c.checkFit(samples, labels, &fo)
	if err != nil {
		return errors.MarkInvalidInput(err)
	}
	var valLabels []L
	if fo.validation {
		var ok bool
		valLabels, ok = fo.valLabels.([]L)
		if !ok {
			return errors.MarkInvalidInput(
				errors.NewValidationError("validation_labels", "label type differs from the classifier's", fo.valLabels))
		}
		if err := checkLabeled(samples[0], fo.valSamples, valLabels, "validation"); err != nil {
			return errors.MarkInvalidInput(err)
		}
	}

	c.state.Reset()
	b := newBuilder(&c.config, samples, labels, names)
	c.root = b.build()
	c.classes = b.classes
	c.names = names
	c.state.SetFitted(len(samples[0]), len(samples))

	c.logger().Info("Tree built",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(samples),
		log.FeaturesKey, len(samples[0]),
		log.ClassesKey, len(c.classes),
		log.TreeDepthKey, c.Depth(),
		log.TreeLeavesKey, c.NLeaves(),
	)

	if fo.validation {
		c.prune(fo.valSamples, valLabels)
	}
	return nil
}

func (c *Classifier[L]) checkFit(samples Table, labels []L, fo *fitOptions) ([]string, error) {
	if err := c.config.validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.NewModelError("Fit", "empty sample table", errors.ErrEmptyData)
	}
	if err := checkLabeled(samples[0], samples, labels, "training"); err != nil {
		return nil, err
	}

	names := c.featureNames
	if fo.names != nil {
		names = fo.names
	}
	if len(names) > 0 && len(names) != len(samples[0]) {
		return nil, errors.NewValidationError("feature_names",
			"count must match the number of features", len(names))
	}
	return slices.Clone(names), nil
}

// checkLabeled verifies that every row has the width of ref and that there
// is one label per row.
func checkLabeled[L comparable](ref []Value, samples Table, labels []L, phase string) error {
	if len(labels) != len(samples) {
		return errors.NewDimensionError("Fit", len(samples), len(labels), 0)
	}
	for i, row := range samples {
		if len(row) != len(ref) {
			return errors.NewInputShapeError(phase, i, len(ref), len(row))
		}
	}
	return nil
}

// Predict returns one label per row, in input order.
func (c *Classifier[L]) Predict(samples Table) ([]L, error) {
	if err := c.checkRows("Predict", samples); err != nil {
		return nil, err
	}
	return predictBatch(c.root, samples, nil), nil
}

// PredictProba returns, for every row, the class frequencies of the leaf it
// reaches. Columns follow Classes.
func (c *Classifier[L]) PredictProba(samples Table) ([][]float64, error) {
	if err := c.checkRows("PredictProba", samples); err != nil {
		return nil, err
	}
	out := make([][]float64, len(samples))
	for i, row := range samples {
		out[i] = predictDistribution(c.root, row, len(c.classes))
	}
	return out, nil
}

func (c *Classifier[L]) checkRows(method string, samples Table) error {
	if err := c.state.RequireFitted(method); err != nil {
		return err
	}
	for _, row := range samples {
		if err := c.state.RequireFeatures(method, len(row)); err != nil {
			return err
		}
	}
	return nil
}

// Prune applies reduced-error pruning to the fitted tree using held-out
// samples and labels, and returns the number of internal nodes collapsed.
// Pruning never increases the number of misclassified validation samples.
// An empty validation set is a no-op.
func (c *Classifier[L]) Prune(samples Table, labels []L) (int, error) {
	if err := c.state.RequireFitted("Prune"); err != nil {
		return 0, err
	}
	nFeatures, _ := c.state.GetDimensions()
	if err := checkLabeled(make([]Value, nFeatures), samples, labels, "validation"); err != nil {
		return 0, errors.MarkInvalidInput(err)
	}
	return c.prune(samples, labels), nil
}

func (c *Classifier[L]) prune(samples Table, labels []L) int {
	collapsed := pruneTree(&c.root, samples, labels)
	c.logger().Info("Tree pruned",
		log.OperationKey, log.OperationPrune,
		log.SamplesKey, len(samples),
		log.PrunedNodesKey, collapsed,
		log.TreeLeavesKey, c.NLeaves(),
	)
	return collapsed
}

// logger is resolved on every use so SetLogger and SetLevel calls made after
// construction take effect.
func (c *Classifier[L]) logger() log.Logger {
	return log.GetLoggerWithName("tree").With(log.ModelNameKey, c.modelName)
}

// Root returns the root of the fitted tree, or nil before Fit.
func (c *Classifier[L]) Root() Node[L] {
	return c.root
}

// Classes returns the training labels in first-encountered order.
func (c *Classifier[L]) Classes() []L {
	return slices.Clone(c.classes)
}

// FeatureNames returns the names used for the last fit, if any.
func (c *Classifier[L]) FeatureNames() []string {
	return slices.Clone(c.names)
}

// Depth returns the depth of the fitted tree (a single leaf has depth 0).
func (c *Classifier[L]) Depth() int {
	if c.root == nil {
		return 0
	}
	return depth(c.root)
}

// NLeaves returns the number of leaves of the fitted tree.
func (c *Classifier[L]) NLeaves() int {
	if c.root == nil {
		return 0
	}
	return countLeaves(c.root)
}

// FeatureImportances returns the total impurity decrease contributed by
// each feature, weighted by the samples split, normalised to sum to 1.
// A tree without splits yields all zeros.
func (c *Classifier[L]) FeatureImportances() []float64 {
	nFeatures, _ := c.state.GetDimensions()
	imp := make([]float64, nFeatures)
	if c.root == nil {
		return imp
	}
	accumulateImportance(c.root, imp)
	if total := floats.Sum(imp); total > 0 {
		floats.Scale(1/total, imp)
	}
	return imp
}

func accumulateImportance[L comparable](n Node[L], imp []float64) {
	in, ok := n.(*Internal[L])
	if !ok {
		return
	}
	imp[in.Feature] += in.Gain * float64(samplesOf(in.Left)+samplesOf(in.Right))
	accumulateImportance(in.Left, imp)
	accumulateImportance(in.Right, imp)
}

func samplesOf[L comparable](n Node[L]) int {
	switch node := n.(type) {
	case *Leaf[L]:
		return node.Samples
	case *Internal[L]:
		return node.Samples
	}
	return 0
}

type classifierJSON[L comparable] struct {
	Classes      []L      `json:"classes"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Depth        int      `json:"depth"`
	NLeaves      int      `json:"n_leaves"`
	Root         Node[L]  `json:"root"`
}

// MarshalJSON exposes the fitted tree as nested leaf and internal objects.
func (c *Classifier[L]) MarshalJSON() ([]byte, error) {
	if err := c.state.RequireFitted("MarshalJSON"); err != nil {
		return nil, err
	}
	return json.Marshal(classifierJSON[L]{
		Classes:      c.classes,
		FeatureNames: c.names,
		Depth:        c.Depth(),
		NLeaves:      c.NLeaves(),
		Root:         c.root,
	})
}

// String renders the fitted tree as indented text.
func (c *Classifier[L]) String() string {
	if c.root == nil {
		return "<unfitted tree>"
	}
	var sb strings.Builder
	writeText(&sb, c.root, 0)
	return sb.String()
}
