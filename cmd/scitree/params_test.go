package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParams_FileThenFlags(t *testing.T) {
	path := writeFile(t, "params.yaml", `
label: play
categorical: [zip]
criterion: entropy
max_depth: 4
min_samples_leaf: 2
validation_size: 0.25
`)
	config := &fitCmdConfig{paramsInput: path, flags: defaultParams()}
	config.flags.MaxDepth = 2
	config.flags.Seed = 99
	changed := func(name string) bool { return name == "max-depth" }

	p, err := config.params(changed)
	require.NoError(t, err)

	assert.Equal(t, "play", p.Label)
	assert.Equal(t, []string{"zip"}, p.Categorical)
	assert.Equal(t, "entropy", p.Criterion)
	assert.Equal(t, 2, p.MaxDepth, "flag overrides file")
	assert.Equal(t, 2, p.MinSamplesLeaf)
	assert.Equal(t, 2, p.MinSamplesSplit, "default kept")
	assert.Equal(t, 0.25, p.ValidationSize)
	assert.Equal(t, int64(1), p.Seed, "unchanged flag does not override")
}

func TestParams_NoFile(t *testing.T) {
	config := &fitCmdConfig{flags: defaultParams()}
	p, err := config.params(func(string) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, defaultParams(), p)
}

func TestParams_Errors(t *testing.T) {
	config := &fitCmdConfig{paramsInput: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := config.params(func(string) bool { return false })
	assert.Error(t, err)

	config.paramsInput = writeFile(t, "bad.yaml", "max_depth: [1, 2]\n")
	_, err = config.params(func(string) bool { return false })
	assert.Error(t, err)

	config.paramsInput = writeFile(t, "size.yaml", "test_size: 1.5\n")
	_, err = config.params(func(string) bool { return false })
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}
