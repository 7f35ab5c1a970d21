// Package log defines standard attribute keys for tree-learning operations.
//
// These keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples", "tree.depth") so that logs from the builder, the pruner
// and the command line tool can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "DecisionTreeClassifier", "Classifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "prune", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is performing the operation.
	// Examples: "tree.builder", "tree.pruner", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	// Examples: "training", "validation", "inference"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct class labels.
	ClassesKey = "data.classes"
)

// Tree Structure
const (
	// TreeDepthKey records the depth of a tree or of the node being built (root = 0).
	TreeDepthKey = "tree.depth"

	// TreeLeavesKey records the number of leaves of a tree.
	TreeLeavesKey = "tree.leaves"

	// FeatureIndexKey records the column a split tests.
	FeatureIndexKey = "tree.feature_index"

	// ThresholdKey records the threshold of a split.
	ThresholdKey = "tree.threshold"

	// GainKey records the impurity reduction of a split.
	GainKey = "tree.gain"

	// PrunedNodesKey records how many internal nodes the pruner collapsed.
	PrunedNodesKey = "tree.pruned_nodes"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// ErrorCountKey records a number of misclassified samples.
	ErrorCountKey = "metrics.error_count"
)

// Prediction and Output Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	// Standard operations
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationPrune   = "prune"
	OperationScore   = "score"

	// Standard phases
	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
