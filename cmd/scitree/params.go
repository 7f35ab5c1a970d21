package main

import (
	"os"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/sklearn/tree"
	"gopkg.in/yaml.v3"
)

// params holds the settings of a fit run. Each field may come from the YAML
// params file and be overridden by the matching command line flag.
type params struct {
	Label          string   `yaml:"label"`
	Categorical    []string `yaml:"categorical"`
	DropConstant   bool     `yaml:"drop_constant"`
	ValidationSize float64  `yaml:"validation_size"`
	TestSize       float64  `yaml:"test_size"`
	Seed           int64    `yaml:"seed"`

	Criterion       string `yaml:"criterion"`
	MaxDepth        int    `yaml:"max_depth"`
	MinSamplesSplit int    `yaml:"min_samples_split"`
	MinSamplesLeaf  int    `yaml:"min_samples_leaf"`
}

func defaultParams() params {
	return params{
		Seed:            1,
		Criterion:       tree.CriterionGini,
		MaxDepth:        -1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

// readParamsFile decodes a YAML params file on top of p. Keys absent from
// the file keep their current values.
func readParamsFile(path string, p *params) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading params file %s", path)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return errors.Wrapf(err, "parsing params file %s", path)
	}
	return nil
}

func (p *params) Validate() error {
	if p.ValidationSize < 0 || p.ValidationSize >= 1 {
		return errors.NewValidationError("validation_size", "must be in [0, 1)", p.ValidationSize)
	}
	if p.TestSize < 0 || p.TestSize >= 1 {
		return errors.NewValidationError("test_size", "must be in [0, 1)", p.TestSize)
	}
	return nil
}

func (p *params) treeOptions() []tree.Option {
	return []tree.Option{
		tree.WithCriterion(p.Criterion),
		tree.WithMaxDepth(p.MaxDepth),
		tree.WithMinSamplesSplit(p.MinSamplesSplit),
		tree.WithMinSamplesLeaf(p.MinSamplesLeaf),
	}
}
