// Package preprocessing は決定木に渡す前のサンプル表の前処理を提供する
package preprocessing

import (
	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/sklearn/tree"
)

// ConstantColumnFilter は全ての非欠損値が同一の列（定数列）を取り除く。
// 全ての値が欠損している列も定数列として扱う。
type ConstantColumnFilter struct {
	state *model.StateManager

	// kept は残す列のインデックス（昇順）
	kept []int
}

// NewConstantColumnFilter は新しいConstantColumnFilterを作成する
//
// 使用例:
//
//	filter := preprocessing.NewConstantColumnFilter()
//	filtered, err := filter.FitTransform(samples)
//	names := filter.FilterNames(featureNames)
func NewConstantColumnFilter() *ConstantColumnFilter {
	return &ConstantColumnFilter{state: model.NewStateManager("ConstantColumnFilter")}
}

// Fit は訓練データから残す列を決定する
func (f *ConstantColumnFilter) Fit(samples tree.Table) error {
	if len(samples) == 0 {
		return errors.NewModelError("ConstantColumnFilter.Fit", "empty data", errors.ErrEmptyData)
	}
	nFeatures := len(samples[0])
	for i, row := range samples {
		if len(row) != nFeatures {
			return errors.NewInputShapeError("training", i, nFeatures, len(row))
		}
	}

	f.kept = f.kept[:0]
	for j := 0; j < nFeatures; j++ {
		if !isConstant(samples, j) {
			f.kept = append(f.kept, j)
		}
	}
	f.state.SetFitted(nFeatures, len(samples))
	return nil
}

func isConstant(samples tree.Table, col int) bool {
	var first tree.Value
	seen := false
	for _, row := range samples {
		v := row[col]
		if v.IsMissing() {
			continue
		}
		if !seen {
			first, seen = v, true
			continue
		}
		if !v.Equal(first) {
			return false
		}
	}
	return true
}

// Transform は学習済みの列だけを残した新しい表を返す。行の値はコピーされる。
func (f *ConstantColumnFilter) Transform(samples tree.Table) (tree.Table, error) {
	if err := f.state.RequireFitted("Transform"); err != nil {
		return nil, err
	}
	out := make(tree.Table, len(samples))
	for i, row := range samples {
		if err := f.state.RequireFeatures("Transform", len(row)); err != nil {
			return nil, err
		}
		kept := make([]tree.Value, len(f.kept))
		for k, j := range f.kept {
			kept[k] = row[j]
		}
		out[i] = kept
	}
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (f *ConstantColumnFilter) FitTransform(samples tree.Table) (tree.Table, error) {
	if err := f.Fit(samples); err != nil {
		return nil, err
	}
	return f.Transform(samples)
}

// KeptColumns は残す列のインデックスを返す
func (f *ConstantColumnFilter) KeptColumns() []int {
	return append([]int(nil), f.kept...)
}

// FilterNames は列名のリストから残す列の名前だけを返す
func (f *ConstantColumnFilter) FilterNames(names []string) []string {
	out := make([]string, 0, len(f.kept))
	for _, j := range f.kept {
		if j < len(names) {
			out = append(out, names[j])
		}
	}
	return out
}
