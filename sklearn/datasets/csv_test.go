package datasets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/scitree/sklearn/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `outlook,humidity,temperature,windy,play
Sunny,High,85,False,No
Sunny,High,80,True,No
Overcast,?,83,False,Yes
Rainy,High,70,False,Yes
`

func TestReadCSV_LastColumnIsLabel(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(weatherCSV), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"outlook", "humidity", "temperature", "windy"}, frame.FeatureNames)
	assert.Equal(t, []string{"No", "No", "Yes", "Yes"}, frame.Labels)
	require.Equal(t, 4, frame.Len())

	row := frame.Samples[2]
	assert.True(t, row[0].Equal(tree.Category("Overcast")))
	assert.True(t, row[1].IsMissing())
	assert.True(t, row[2].Equal(tree.Number(83)))
	assert.True(t, row[3].Equal(tree.Category("False")))
}

func TestReadCSV_NamedLabelColumn(t *testing.T) {
	data := "play,temperature\nYes,70\nNo,NA\n"
	frame, err := ReadCSV(strings.NewReader(data), "play")
	require.NoError(t, err)

	assert.Equal(t, []string{"temperature"}, frame.FeatureNames)
	assert.Equal(t, []string{"Yes", "No"}, frame.Labels)
	assert.True(t, frame.Samples[1][0].IsMissing())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		label string
	}{
		{"empty input", "", ""},
		{"unknown label column", "a,b\n1,2\n", "c"},
		{"single column", "a\n1\n", ""},
		{"ragged row", "a,b\n1,2\n3\n", ""},
		{"missing label", "a,b\n1,?\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), tt.label)
			assert.Error(t, err)
		})
	}
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(weatherCSV), 0o600))

	frame, err := ReadCSVFile(path, "play")
	require.NoError(t, err)
	assert.Equal(t, 4, frame.Len())

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "absent.csv"), "")
	assert.Error(t, err)
}

func TestFrame_Subset(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(weatherCSV), "")
	require.NoError(t, err)

	sub := frame.Subset([]int{3, 0})
	assert.Equal(t, []string{"Yes", "No"}, sub.Labels)
	assert.True(t, sub.Samples[0][0].Equal(tree.Category("Rainy")))
	assert.Equal(t, frame.FeatureNames, sub.FeatureNames)
}

func TestFrame_Categorize(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader("zip,size,label\n28001,3,A\n08001,?,B\n"), "")
	require.NoError(t, err)

	require.NoError(t, frame.Categorize("zip"))
	assert.True(t, frame.Samples[0][0].Equal(tree.Category("28001")))
	assert.True(t, frame.Samples[1][0].Equal(tree.Category("8001")))
	assert.True(t, frame.Samples[0][1].IsNumber())

	assert.Error(t, frame.Categorize("nope"))
}
