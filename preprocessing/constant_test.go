package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/sklearn/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantColumnFilter_DropsConstantColumns(t *testing.T) {
	samples := tree.Table{
		{tree.Category("Sunny"), tree.Number(1), tree.Missing(), tree.Number(85)},
		{tree.Category("Rainy"), tree.Number(1), tree.Missing(), tree.Number(70)},
		{tree.Category("Sunny"), tree.Missing(), tree.Missing(), tree.Number(70)},
	}

	filter := NewConstantColumnFilter()
	out, err := filter.FitTransform(samples)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3}, filter.KeptColumns())
	assert.Equal(t, []string{"outlook", "temperature"},
		filter.FilterNames([]string{"outlook", "id", "empty", "temperature"}))

	require.Len(t, out, 3)
	assert.True(t, out[1][0].Equal(tree.Category("Rainy")))
	assert.True(t, out[1][1].Equal(tree.Number(70)))
	assert.Len(t, samples[0], 4, "input is not modified")
}

func TestConstantColumnFilter_MixedKindsAreNotConstant(t *testing.T) {
	samples := tree.Table{{tree.Number(1)}, {tree.Category("1")}}

	filter := NewConstantColumnFilter()
	require.NoError(t, filter.Fit(samples))
	assert.Equal(t, []int{0}, filter.KeptColumns())
}

func TestConstantColumnFilter_Errors(t *testing.T) {
	filter := NewConstantColumnFilter()

	_, err := filter.Transform(tree.Table{{tree.Number(1)}})
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	err = filter.Fit(tree.Table{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = filter.Fit(tree.Table{{tree.Number(1), tree.Number(2)}, {tree.Number(1)}})
	var shapeErr *errors.InputShapeError
	assert.True(t, errors.As(err, &shapeErr))

	require.NoError(t, filter.Fit(tree.Table{{tree.Number(1), tree.Number(2)}, {tree.Number(3), tree.Number(2)}}))
	_, err = filter.Transform(tree.Table{{tree.Number(1)}})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
