// Package datasets loads labelled tables for the tree classifiers.
package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/sklearn/tree"
)

// Frame is a labelled sample table read from a CSV source.
type Frame struct {
	FeatureNames []string
	Samples      tree.Table
	Labels       []string
}

// Len returns the number of samples.
func (f *Frame) Len() int {
	return len(f.Samples)
}

// Subset returns a frame holding the rows at idx, in that order. Rows are
// shared with f, not copied.
func (f *Frame) Subset(idx []int) *Frame {
	out := &Frame{
		FeatureNames: slices.Clone(f.FeatureNames),
		Samples:      make(tree.Table, len(idx)),
		Labels:       make([]string, len(idx)),
	}
	for i, r := range idx {
		out.Samples[i] = f.Samples[r]
		out.Labels[i] = f.Labels[r]
	}
	return out
}

// Categorize turns the numeric cells of the named feature columns into
// categorical tokens, so the tree tests them for equality instead of
// thresholding them. Rows are modified in place.
func (f *Frame) Categorize(columns ...string) error {
	for _, name := range columns {
		j := slices.Index(f.FeatureNames, name)
		if j < 0 {
			return errors.NewValueError("Categorize", fmt.Sprintf("feature column %q not found", name))
		}
		for _, row := range f.Samples {
			if row[j].IsNumber() {
				row[j] = tree.Category(strconv.FormatFloat(row[j].Float(), 'g', -1, 64))
			}
		}
	}
	return nil
}

// ReadCSV reads a CSV stream whose first row is a header of column names.
// The column named labelColumn holds the class labels (the last column when
// labelColumn is empty); every other column is a feature. Cells are parsed
// with tree.ParseValue, so "?", "NA" and empty cells are missing values.
// Rows with a missing label are rejected.
func ReadCSV(r io.Reader, labelColumn string) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	labelIdx := len(header) - 1
	if labelColumn != "" {
		labelIdx = slices.Index(header, labelColumn)
		if labelIdx < 0 {
			return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("label column %q not found in header", labelColumn))
		}
	}
	if len(header) < 2 {
		return nil, errors.NewValueError("ReadCSV", "need at least one feature column and one label column")
	}

	frame := &Frame{}
	for i, name := range header {
		if i != labelIdx {
			frame.FeatureNames = append(frame.FeatureNames, strings.TrimSpace(name))
		}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading line %d", line)
		}

		label := strings.TrimSpace(record[labelIdx])
		if tree.ParseValue(label).IsMissing() {
			return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("missing label on line %d", line))
		}

		row := make([]tree.Value, 0, len(record)-1)
		for i, cell := range record {
			if i != labelIdx {
				row = append(row, tree.ParseValue(cell))
			}
		}
		frame.Samples = append(frame.Samples, row)
		frame.Labels = append(frame.Labels, label)
	}
	return frame, nil
}

// ReadCSVFile opens path and reads it with ReadCSV. An empty path or "-"
// reads from standard input.
func ReadCSVFile(path, labelColumn string) (*Frame, error) {
	if path == "" || path == "-" {
		return ReadCSV(os.Stdin, labelColumn)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	frame, err := ReadCSV(f, labelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return frame, nil
}
