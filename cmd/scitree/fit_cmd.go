package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/preprocessing"
	"github.com/YuminosukeSato/scitree/sklearn/datasets"
	"github.com/YuminosukeSato/scitree/sklearn/model_selection"
	"github.com/YuminosukeSato/scitree/sklearn/tree"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type fitCmdConfig struct {
	*rootCmdConfig
	paramsInput      string
	trainInput       string
	validationInput  string
	testInput        string
	output           string
	format           string
	predictionOutput string
	flags            params
}

// fitData bundles the three sample sets of a run. Validation and Test may
// be empty.
type fitData struct {
	Train      *datasets.Frame
	Validation *datasets.Frame
	Test       *datasets.Frame
}

func fitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &fitCmdConfig{rootCmdConfig: rootConfig, flags: defaultParams()}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Grow a tree from a set of data",
		Long: `Grow a classification tree from a CSV training set, prune it against a
validation set and report its accuracy on a test set. When only a training
set is given, validation and test sets are split from it according to
--validation-size and --test-size.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.params(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			if err := config.Validate(p); err != nil {
				return err
			}
			return config.run(cmd.OutOrStdout(), p)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&(config.paramsInput), "params", "p", "", "path to a YAML file with run parameters; flags override its values")
	flags.StringVarP(&(config.trainInput), "input", "i", "", "path to the training CSV file (defaults to STDIN)")
	flags.StringVar(&(config.validationInput), "validation", "", "path to a CSV file of held-out samples used to prune the tree")
	flags.StringVar(&(config.testInput), "test", "", "path to a CSV file of samples used to evaluate the tree")
	flags.StringVarP(&(config.output), "output", "o", "", "path to a file to which the tree will be written (defaults to STDOUT)")
	flags.StringVarP(&(config.format), "format", "f", "text", "tree output format: text or json")
	flags.StringVar(&(config.predictionOutput), "predictions", "", "path to a CSV file to which test set predictions will be written")

	flags.StringVarP(&(config.flags.Label), "label", "l", config.flags.Label, "name of the label column (defaults to the last column)")
	flags.StringSliceVar(&(config.flags.Categorical), "categorical", nil, "feature columns whose numbers are categorical tokens")
	flags.BoolVar(&(config.flags.DropConstant), "drop-constant", false, "drop feature columns holding a single value")
	flags.Float64Var(&(config.flags.ValidationSize), "validation-size", 0, "fraction of the training file held out for pruning when --validation is not set")
	flags.Float64Var(&(config.flags.TestSize), "test-size", 0, "fraction of the training file held out for evaluation when --test is not set")
	flags.Int64Var(&(config.flags.Seed), "seed", config.flags.Seed, "random seed used to split the training file")
	flags.StringVar(&(config.flags.Criterion), "criterion", config.flags.Criterion, "split quality measure: gini or entropy")
	flags.IntVar(&(config.flags.MaxDepth), "max-depth", config.flags.MaxDepth, "maximum tree depth (-1 for unbounded)")
	flags.IntVar(&(config.flags.MinSamplesSplit), "min-samples-split", config.flags.MinSamplesSplit, "minimum number of samples required to split a node")
	flags.IntVar(&(config.flags.MinSamplesLeaf), "min-samples-leaf", config.flags.MinSamplesLeaf, "minimum number of samples on each side of a split")
	return cmd
}

func (fcc *fitCmdConfig) Validate(p params) error {
	if fcc.format != "text" && fcc.format != "json" {
		return fmt.Errorf("unknown output format %q, must be text or json", fcc.format)
	}
	if fcc.predictionOutput != "" && fcc.testInput == "" && p.TestSize == 0 {
		return fmt.Errorf("predictions flag requires a test set")
	}
	return nil
}

// params resolves the run parameters: defaults, then the params file, then
// every flag the user set explicitly.
func (fcc *fitCmdConfig) params(changed func(string) bool) (params, error) {
	p := defaultParams()
	if fcc.paramsInput != "" {
		if err := readParamsFile(fcc.paramsInput, &p); err != nil {
			return p, err
		}
	}
	p = mergeFlags(p, fcc.flags, changed)
	return p, p.Validate()
}

func mergeFlags(p, flags params, changed func(string) bool) params {
	if changed("label") {
		p.Label = flags.Label
	}
	if changed("categorical") {
		p.Categorical = flags.Categorical
	}
	if changed("drop-constant") {
		p.DropConstant = flags.DropConstant
	}
	if changed("validation-size") {
		p.ValidationSize = flags.ValidationSize
	}
	if changed("test-size") {
		p.TestSize = flags.TestSize
	}
	if changed("seed") {
		p.Seed = flags.Seed
	}
	if changed("criterion") {
		p.Criterion = flags.Criterion
	}
	if changed("max-depth") {
		p.MaxDepth = flags.MaxDepth
	}
	if changed("min-samples-split") {
		p.MinSamplesSplit = flags.MinSamplesSplit
	}
	if changed("min-samples-leaf") {
		p.MinSamplesLeaf = flags.MinSamplesLeaf
	}
	return p
}

func (fcc *fitCmdConfig) run(w io.Writer, p params) error {
	logger := log.GetLoggerWithName("cmd.fit")

	data, err := fcc.loadData(p)
	if err != nil {
		return err
	}
	names, err := prepare(data, p)
	if err != nil {
		return err
	}
	logger.Info("Data loaded",
		log.SamplesKey, data.Train.Len(),
		log.FeaturesKey, len(names),
		"validation_samples", data.Validation.Len(),
		"test_samples", data.Test.Len(),
	)

	clf := tree.NewClassifier[string](p.treeOptions()...)
	fitOpts := []tree.FitOption{tree.WithNames(names...)}
	if data.Validation.Len() > 0 {
		fitOpts = append(fitOpts, tree.WithValidation(data.Validation.Samples, data.Validation.Labels))
	}
	if err := clf.Fit(data.Train.Samples, data.Train.Labels, fitOpts...); err != nil {
		return errors.Wrap(err, "growing the tree")
	}

	if err := fcc.outputTree(w, clf); err != nil {
		return err
	}
	if data.Test.Len() == 0 {
		return nil
	}

	predictions, err := clf.Predict(data.Test.Samples)
	if err != nil {
		return errors.Wrap(err, "predicting the test set")
	}
	if fcc.predictionOutput != "" {
		if err := writePredictions(fcc.predictionOutput, data.Test.Labels, predictions); err != nil {
			return err
		}
	}
	return report(w, clf.Classes(), data.Test.Labels, predictions)
}

func (fcc *fitCmdConfig) loadData(p params) (*fitData, error) {
	train, err := datasets.ReadCSVFile(fcc.trainInput, p.Label)
	if err != nil {
		return nil, errors.Wrap(err, "reading training set")
	}
	data := &fitData{Train: train, Validation: &datasets.Frame{}, Test: &datasets.Frame{}}

	validation, test := p.ValidationSize, p.TestSize
	if fcc.validationInput != "" {
		validation = 0
		if data.Validation, err = datasets.ReadCSVFile(fcc.validationInput, p.Label); err != nil {
			return nil, errors.Wrap(err, "reading validation set")
		}
	}
	if fcc.testInput != "" {
		test = 0
		if data.Test, err = datasets.ReadCSVFile(fcc.testInput, p.Label); err != nil {
			return nil, errors.Wrap(err, "reading testing set")
		}
	}

	if validation > 0 || test > 0 {
		split, err := model_selection.TrainValidationTestSplit(train.Len(), validation, test, p.Seed)
		if err != nil {
			return nil, errors.Wrap(err, "splitting training set")
		}
		data.Train = train.Subset(split.Train)
		if validation > 0 {
			data.Validation = train.Subset(split.Validation)
		}
		if test > 0 {
			data.Test = train.Subset(split.Test)
		}
	}
	return data, nil
}

// prepare applies the categorical and constant column settings to every set
// and returns the resulting feature names.
func prepare(data *fitData, p params) ([]string, error) {
	frames := []*datasets.Frame{data.Train, data.Validation, data.Test}
	for _, f := range frames {
		if f.Len() == 0 {
			continue
		}
		if err := f.Categorize(p.Categorical...); err != nil {
			return nil, err
		}
	}
	names := data.Train.FeatureNames
	if !p.DropConstant {
		return names, nil
	}

	filter := preprocessing.NewConstantColumnFilter()
	if err := filter.Fit(data.Train.Samples); err != nil {
		return nil, errors.Wrap(err, "finding constant columns")
	}
	for _, f := range frames {
		if f.Len() == 0 {
			continue
		}
		samples, err := filter.Transform(f.Samples)
		if err != nil {
			return nil, errors.Wrap(err, "dropping constant columns")
		}
		f.Samples = samples
		f.FeatureNames = filter.FilterNames(f.FeatureNames)
	}
	return filter.FilterNames(names), nil
}

func (fcc *fitCmdConfig) outputTree(w io.Writer, clf *tree.Classifier[string]) error {
	if fcc.output != "" {
		f, err := os.Create(fcc.output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", fcc.output)
		}
		defer f.Close()
		w = f
	}
	if fcc.format == "json" {
		data, err := clf.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	_, err := fmt.Fprint(w, clf.String())
	return err
}

func writePredictions(path string, labels, predictions []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"row", "label", "prediction"}); err != nil {
		return err
	}
	for i := range predictions {
		if err := cw.Write([]string{strconv.Itoa(i), labels[i], predictions[i]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// report prints the test set accuracy and confusion matrix. Labels seen only
// in the test set get their own row and column after the tree's classes.
func report(w io.Writer, classes, labels, predictions []string) error {
	accuracy, err := metrics.AccuracyScore(labels, predictions)
	if err != nil {
		return err
	}
	order := append([]string(nil), classes...)
	known := make(map[string]bool, len(order))
	for _, c := range order {
		known[c] = true
	}
	for _, l := range labels {
		if !known[l] {
			known[l] = true
			order = append(order, l)
		}
	}
	cm, err := metrics.ConfusionMatrix(labels, predictions, order)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "accuracy: %.4f (%d samples)\n", accuracy, len(labels))
	fmt.Fprintf(w, "confusion matrix (rows: label, columns: prediction) %v\n", order)
	fmt.Fprintf(w, "%v\n", mat.Formatted(cm, mat.Squeeze()))
	return nil
}
