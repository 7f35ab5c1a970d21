package tree

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDecisionTreeClassifier_ProbaColumnsFollowSortedClasses(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 8, 9})
	y := mat.NewDense(4, 1, []float64{2, 2, 0, 0})

	dt := NewDecisionTreeClassifier()
	require.NoError(t, dt.Fit(X, y))
	assert.Equal(t, []float64{0, 2}, dt.Classes())

	probas, err := dt.PredictProba(mat.NewDense(2, 1, []float64{1.5, 8.5}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, mat.Row(nil, 0, probas))
	assert.Equal(t, []float64{1, 0}, mat.Row(nil, 1, probas))

	pred, err := dt.Predict(mat.NewDense(2, 1, []float64{1.5, 8.5}))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, mat.Col(nil, 0, pred))
}

func TestDecisionTreeClassifier_NaNIsMissing(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 8, 9})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	dt := NewDecisionTreeClassifier()
	require.NoError(t, dt.Fit(X, y))

	pred, err := dt.Predict(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.At(0, 0))

	probas, err := dt.PredictProba(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, mat.Row(nil, 0, probas), 1e-12)
}

func TestDecisionTreeClassifier_CategoricalFeatures(t *testing.T) {
	// Column 0 holds category codes: 1 and 3 share a class, 2 does not.
	X := mat.NewDense(6, 1, []float64{1, 3, 2, 1, 3, 2})
	y := mat.NewDense(6, 1, []float64{0, 0, 1, 0, 0, 1})

	dt := NewDecisionTreeClassifier(WithCategoricalFeatures(0))
	require.NoError(t, dt.Fit(X, y))
	assert.Equal(t, 1.0, dt.Score(X, y))

	root, ok := dt.Tree().Root().(*Internal[float64])
	require.True(t, ok)
	assert.Equal(t, Categorical, root.Kind)
	assert.True(t, root.Threshold.IsCategory())
}

func TestDecisionTreeClassifier_FitWithValidation(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{0, 1, 0, 0})
	yVal := mat.NewDense(4, 1, []float64{0, 0, 0, 0})

	dt := NewDecisionTreeClassifier()
	require.NoError(t, dt.FitWithValidation(X, y, X, yVal))
	assert.Equal(t, 1, dt.GetNLeaves())
	assert.Equal(t, 0, dt.GetDepth())
	assert.Equal(t, 1.0, dt.Score(X, yVal))
}

func TestDecisionTreeClassifier_InputErrors(t *testing.T) {
	dt := NewDecisionTreeClassifier()

	err := dt.Fit(mat.NewDense(3, 2, nil), mat.NewDense(2, 1, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = dt.Fit(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	require.NoError(t, dt.Fit(mat.NewDense(2, 2, []float64{0, 0, 1, 1}), mat.NewDense(2, 1, []float64{0, 1})))
	_, err = dt.Predict(mat.NewDense(1, 3, nil))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Got)
}

func TestDecisionTreeClassifier_ScoreWithoutFit(t *testing.T) {
	dt := NewDecisionTreeClassifier()
	assert.Equal(t, 0.0, dt.Score(mat.NewDense(1, 1, nil), mat.NewDense(1, 1, nil)))
	assert.Nil(t, dt.GetFeatureImportances())
	assert.Equal(t, 0, dt.GetDepth())
	assert.Nil(t, dt.Tree())
}

func TestDecisionTreeClassifier_SetParamsValidation(t *testing.T) {
	dt := NewDecisionTreeClassifier(WithMaxDepth(4))

	assert.Error(t, dt.SetParams(map[string]interface{}{"criterion": "mse"}))
	assert.Error(t, dt.SetParams(map[string]interface{}{"max_depth": 0}))
	assert.Error(t, dt.SetParams(map[string]interface{}{"min_samples_leaf": 1.5}))
	assert.Error(t, dt.SetParams(map[string]interface{}{"splitter": "best"}))
	assert.Equal(t, 4, dt.maxDepth, "failed updates leave parameters unchanged")

	require.NoError(t, dt.SetParams(map[string]interface{}{"max_depth": nil, "min_samples_split": 3.0}))
	assert.Equal(t, -1, dt.maxDepth)
	assert.Equal(t, 3, dt.minSamplesSplit)
	assert.Equal(t, -1, dt.GetParams()["max_depth"])
}
