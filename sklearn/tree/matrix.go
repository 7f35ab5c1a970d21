package tree

import (
	"math"
	"slices"
	"strconv"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Classifier   = (*DecisionTreeClassifier)(nil)
	_ model.Configurable = (*DecisionTreeClassifier)(nil)
)

// DecisionTreeClassifier is a decision tree classifier over gonum matrices,
// compatible with scikit-learn's DecisionTreeClassifier.
//
// NaN cells are missing values. Columns listed with WithCategoricalFeatures
// hold category codes and are split by equality; all other columns are
// split by thresholds.
type DecisionTreeClassifier struct {
	config
	state *model.StateManager

	tree       *Classifier[float64]
	classes_   []float64 // sorted class labels
	nClasses_  int
	nFeatures_ int
	column_    []int // tree class index -> probability column
}

// NewDecisionTreeClassifier creates a new DecisionTreeClassifier.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		config: defaultConfig(),
		state:  model.NewStateManager("DecisionTreeClassifier"),
	}
	for _, opt := range opts {
		opt(&dt.config)
	}
	return dt
}

// Fit builds the tree from X (n_samples x n_features) and y (n_samples x 1).
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) error {
	return dt.FitWithValidation(X, y, nil, nil)
}

// FitWithValidation builds the tree and, when XVal is not nil, prunes it
// against XVal and yVal.
func (dt *DecisionTreeClassifier) FitWithValidation(X, y, XVal, yVal mat.Matrix) error {
	labels, err := labelColumn("Fit", X, y)
	if err != nil {
		return errors.MarkInvalidInput(err)
	}

	var fitOpts []FitOption
	if XVal != nil {
		valLabels, err := labelColumn("Fit", XVal, yVal)
		if err != nil {
			return errors.MarkInvalidInput(err)
		}
		fitOpts = append(fitOpts, WithValidation(dt.toTable(XVal), valLabels))
	}

	t := NewClassifier[float64]()
	t.config = dt.config
	t.modelName = "DecisionTreeClassifier"

	dt.state.Reset()
	if err := t.Fit(dt.toTable(X), labels, fitOpts...); err != nil {
		return err
	}

	dt.tree = t
	dt.classes_ = slices.Sorted(slices.Values(t.classes))
	dt.nClasses_ = len(dt.classes_)
	dt.column_ = make([]int, len(t.classes))
	for i, c := range t.classes {
		dt.column_[i], _ = slices.BinarySearch(dt.classes_, c)
	}
	_, dt.nFeatures_ = X.Dims()
	dt.state.SetFitted(dt.nFeatures_, len(labels))
	return nil
}

// labelColumn checks that y is a column vector aligned with X and returns it.
func labelColumn(op string, X, y mat.Matrix) ([]float64, error) {
	if y == nil {
		return nil, errors.NewValueError(op, "y must not be nil")
	}
	xRows, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector (n×1 matrix)")
	}
	if xRows != yRows {
		return nil, errors.NewDimensionError(op, xRows, yRows, 0)
	}
	labels := make([]float64, yRows)
	for i := range labels {
		labels[i] = y.At(i, 0)
	}
	return labels, nil
}

func (dt *DecisionTreeClassifier) toTable(X mat.Matrix) Table {
	rows, cols := X.Dims()
	categorical := make([]bool, cols)
	for _, c := range dt.categorical {
		if c >= 0 && c < cols {
			categorical[c] = true
		}
	}

	samples := make(Table, rows)
	for i := range samples {
		row := make([]Value, cols)
		for j := range row {
			v := X.At(i, j)
			switch {
			case math.IsNaN(v):
				row[j] = Missing()
			case categorical[j]:
				row[j] = Category(strconv.FormatFloat(v, 'g', -1, 64))
			default:
				row[j] = Number(v)
			}
		}
		samples[i] = row
	}
	return samples
}

func (dt *DecisionTreeClassifier) checkInput(method string, X mat.Matrix) error {
	_, cols := X.Dims()
	return dt.state.RequireFeatures(method, cols)
}

// Predict returns the predicted class of every row as an n_samples x 1 matrix.
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.checkInput("Predict", X); err != nil {
		return nil, err
	}
	labels, err := dt.tree.Predict(dt.toTable(X))
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(labels), 1, labels), nil
}

// PredictProba returns class probabilities as an n_samples x n_classes
// matrix. Columns follow Classes.
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.checkInput("PredictProba", X); err != nil {
		return nil, err
	}
	dists, err := dt.tree.PredictProba(dt.toTable(X))
	if err != nil {
		return nil, err
	}
	probas := mat.NewDense(len(dists), dt.nClasses_, nil)
	for i, dist := range dists {
		for k, p := range dist {
			probas.Set(i, dt.column_[k], p)
		}
	}
	return probas, nil
}

// Score returns the mean accuracy on X and y. It returns 0 when the model is
// not fitted or the input is malformed; the cause is logged.
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) float64 {
	pred, err := dt.Predict(X)
	if err == nil {
		var acc float64
		acc, err = metrics.AccuracyMatrix(y, pred)
		if err == nil {
			return acc
		}
	}
	log.GetLoggerWithName("tree").Warn("score unavailable", err,
		log.ModelNameKey, "DecisionTreeClassifier",
		log.OperationKey, log.OperationScore,
	)
	return 0
}

// Classes returns the sorted class labels seen during fitting.
func (dt *DecisionTreeClassifier) Classes() []float64 {
	return slices.Clone(dt.classes_)
}

// Tree returns the underlying fitted tree, or nil before Fit.
func (dt *DecisionTreeClassifier) Tree() *Classifier[float64] {
	return dt.tree
}

// GetFeatureImportances returns normalised impurity-based feature importances.
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	if dt.tree == nil {
		return nil
	}
	return dt.tree.FeatureImportances()
}

// GetDepth returns the depth of the fitted tree.
func (dt *DecisionTreeClassifier) GetDepth() int {
	if dt.tree == nil {
		return 0
	}
	return dt.tree.Depth()
}

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	if dt.tree == nil {
		return 0
	}
	return dt.tree.NLeaves()
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return dt.config.params()
}

// SetParams updates hyperparameters. The update is all-or-nothing.
func (dt *DecisionTreeClassifier) SetParams(params map[string]interface{}) error {
	return dt.config.setParams(params)
}
