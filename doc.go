// Package scitree provides CART decision-tree classifiers for Go, designed
// for backend services that need small, inspectable models.
//
// scitree grows binary classification trees over tables that mix
// continuous and categorical features and may contain missing values, and
// prunes them against held-out samples with reduced-error pruning.
//
// # Features
//
//   - Mixed feature types: numbers are split with "<=" thresholds, tokens
//     with "==" tests, detected per feature from the training data
//   - Missing values: ignored when choosing a split, resolved by a vote of
//     both branches at prediction time
//   - Reduced-error pruning: collapse subtrees that do not help on a
//     validation set
//   - Generic labels: any comparable Go type can be a class label
//   - scikit-learn-like API over gonum matrices via DecisionTreeClassifier
//
// # Installation
//
//	go get github.com/YuminosukeSato/scitree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scitree/sklearn/tree"
//	)
//
//	func main() {
//	    samples := tree.Table{
//	        {tree.Category("Sunny"), tree.Number(85)},
//	        {tree.Category("Overcast"), tree.Number(83)},
//	        {tree.Category("Rainy"), tree.Missing()},
//	    }
//	    labels := []string{"No", "Yes", "Yes"}
//
//	    clf := tree.NewClassifier[string](tree.WithMaxDepth(3))
//	    if err := clf.Fit(samples, labels, tree.WithNames("outlook", "temperature")); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := clf.Predict(tree.Table{{tree.Category("Sunny"), tree.Number(70)}})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(predictions)
//	    fmt.Print(clf)
//	}
//
// # Packages
//
//   - sklearn/tree: Classifier, DecisionTreeClassifier, tree nodes and pruning
//   - sklearn/datasets: CSV loading into labelled sample tables
//   - sklearn/model_selection: seeded train/validation/test splits
//   - preprocessing: constant column removal
//   - metrics: accuracy, zero-one loss and confusion matrices
//   - core/model: estimator interfaces and fitted-state tracking
//   - core/parallel: parallel batch processing
//   - pkg/errors, pkg/log: structured errors and logging
//   - cmd/scitree: command line tool to grow, prune and evaluate trees
//
// # Performance
//
// Batch prediction is parallelized automatically for more than 1000 rows.
// A fitted tree is read-only and safe for concurrent Predict calls.
//
// # License
//
// scitree is released under the MIT License.
package scitree
