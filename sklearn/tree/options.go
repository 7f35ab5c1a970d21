package tree

import (
	"slices"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// config holds the hyperparameters shared by Classifier and
// DecisionTreeClassifier.
type config struct {
	criterion       string
	maxDepth        int // -1 means unbounded
	minSamplesSplit int
	minSamplesLeaf  int
	featureNames    []string
	categorical     []int // DecisionTreeClassifier only
}

func defaultConfig() config {
	return config{
		criterion:       CriterionGini,
		maxDepth:        -1,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	}
}

func (c *config) validate() error {
	if _, ok := criterionByName(c.criterion); !ok {
		return errors.NewValidationError("criterion", "must be \"gini\" or \"entropy\"", c.criterion)
	}
	if c.maxDepth == 0 || c.maxDepth < -1 {
		return errors.NewValidationError("max_depth", "must be positive or -1 for unbounded", c.maxDepth)
	}
	if c.minSamplesSplit < 1 {
		return errors.NewValidationError("min_samples_split", "must be at least 1", c.minSamplesSplit)
	}
	if c.minSamplesLeaf < 1 {
		return errors.NewValidationError("min_samples_leaf", "must be at least 1", c.minSamplesLeaf)
	}
	return nil
}

func (c *config) params() map[string]interface{} {
	return map[string]interface{}{
		"criterion":         c.criterion,
		"max_depth":         c.maxDepth,
		"min_samples_split": c.minSamplesSplit,
		"min_samples_leaf":  c.minSamplesLeaf,
	}
}

// setParams applies a parameter map. Integers may arrive as int, int64 or
// integral float64 (decoded JSON or YAML); a nil max_depth means unbounded.
func (c *config) setParams(params map[string]interface{}) error {
	next := *c
	for key, value := range params {
		switch key {
		case "criterion":
			s, ok := value.(string)
			if !ok {
				return errors.NewValidationError(key, "must be a string", value)
			}
			next.criterion = s
		case "max_depth":
			if value == nil {
				next.maxDepth = -1
				continue
			}
			n, err := intParam(key, value)
			if err != nil {
				return err
			}
			next.maxDepth = n
		case "min_samples_split":
			n, err := intParam(key, value)
			if err != nil {
				return err
			}
			next.minSamplesSplit = n
		case "min_samples_leaf":
			n, err := intParam(key, value)
			if err != nil {
				return err
			}
			next.minSamplesLeaf = n
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func intParam(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, errors.NewValidationError(key, "must be an integer", value)
}

// Option is a functional option for Classifier and DecisionTreeClassifier.
type Option func(*config)

// WithCriterion sets the split quality measure, "gini" (default) or "entropy".
func WithCriterion(criterion string) Option {
	return func(c *config) {
		c.criterion = criterion
	}
}

// WithMaxDepth caps the depth of the tree (root = 0). -1 means unbounded.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum number of samples a node needs to be split.
func WithMinSamplesSplit(n int) Option {
	return func(c *config) {
		c.minSamplesSplit = n
	}
}

// WithMinSamplesLeaf sets the minimum number of samples on each side of a split.
func WithMinSamplesLeaf(n int) Option {
	return func(c *config) {
		c.minSamplesLeaf = n
	}
}

// WithFeatureNames names the features by column index.
func WithFeatureNames(names ...string) Option {
	return func(c *config) {
		c.featureNames = slices.Clone(names)
	}
}

// WithCategoricalFeatures marks matrix columns whose values are category
// codes rather than quantities. Only DecisionTreeClassifier uses it.
func WithCategoricalFeatures(columns ...int) Option {
	return func(c *config) {
		c.categorical = slices.Clone(columns)
	}
}

type fitOptions struct {
	names      []string
	valSamples Table
	valLabels  interface{}
	validation bool
}

// FitOption configures a single call to Classifier.Fit.
type FitOption func(*fitOptions)

// WithNames names the features for this fit, overriding WithFeatureNames.
func WithNames(names ...string) FitOption {
	return func(o *fitOptions) {
		o.names = slices.Clone(names)
	}
}

// WithValidation prunes the freshly built tree against the given held-out
// samples and labels.
func WithValidation[L comparable](samples Table, labels []L) FitOption {
	return func(o *fitOptions) {
		o.valSamples = samples
		o.valLabels = labels
		o.validation = true
	}
}
