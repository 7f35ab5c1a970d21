package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `outlook,humidity,temperature,windy,play
Sunny,High,85,False,No
Sunny,High,80,True,No
Overcast,?,83,False,Yes
Rainy,High,70,False,Yes
Rainy,Normal,68,False,Yes
Rainy,Normal,65,True,No
Overcast,Normal,64,True,Yes
Sunny,Normal,72,False,Yes
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFitCmd_TextTreeAndReport(t *testing.T) {
	train := writeFile(t, "weather.csv", weatherCSV)

	out, err := execute(t, "fit", "-i", train, "--test", train, "--max-depth", "3")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "|--- temperature <= 84\n"), out)
	assert.Contains(t, out, "accuracy: 1.0000 (8 samples)")
	assert.Contains(t, out, "[No Yes]")
}

func TestFitCmd_JSONOutputAndPredictions(t *testing.T) {
	train := writeFile(t, "weather.csv", weatherCSV)
	dir := t.TempDir()
	treePath := dir + "/tree.json"
	predPath := dir + "/predictions.csv"

	_, err := execute(t, "fit", "-i", train, "--test", train,
		"--max-depth", "3", "--format", "json", "--output", treePath, "--predictions", predPath)
	require.NoError(t, err)

	data, err := os.ReadFile(treePath)
	require.NoError(t, err)
	var decoded struct {
		Classes      []string `json:"classes"`
		FeatureNames []string `json:"feature_names"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"No", "Yes"}, decoded.Classes)
	assert.Equal(t, []string{"outlook", "humidity", "temperature", "windy"}, decoded.FeatureNames)

	preds, err := os.ReadFile(predPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(preds)), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "row,label,prediction", lines[0])
	assert.Equal(t, "0,No,No", lines[1])
}

func TestFitCmd_DropConstantAndValidation(t *testing.T) {
	train := writeFile(t, "train.csv", "id,x,label\n1,1,A\n1,2,B\n1,3,A\n1,4,A\n")
	validation := writeFile(t, "val.csv", "id,x,label\n1,1,A\n1,2,A\n1,3,A\n1,4,A\n")

	out, err := execute(t, "fit", "-i", train, "--validation", validation, "--drop-constant")
	require.NoError(t, err)
	assert.Equal(t, "|--- class: A (samples=4)\n", out)
}

func TestFitCmd_SplitsSingleFile(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("x,label\n")
	for i := 0; i < 40; i++ {
		label := "low"
		if i >= 20 {
			label = "high"
		}
		sb.WriteString(strconv.Itoa(i) + "," + label + "\n")
	}
	train := writeFile(t, "data.csv", sb.String())

	out, err := execute(t, "fit", "-i", train, "--test-size", "0.25", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "(10 samples)")
}

func TestFitCmd_Errors(t *testing.T) {
	train := writeFile(t, "weather.csv", weatherCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"fit", "-i", train, "--format", "xml"}},
		{"predictions without test set", []string{"fit", "-i", train, "--predictions", "p.csv"}},
		{"missing input", []string{"fit", "-i", train + ".missing"}},
		{"invalid max depth", []string{"fit", "-i", train, "--max-depth", "0"}},
		{"unknown label column", []string{"fit", "-i", train, "--label", "nope"}},
		{"bad log level", []string{"--log-level", "loud", "fit", "-i", train}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scitree dev\n", out)
}
