// Package metrics は分類モデルの評価指標を提供します。
package metrics

import (
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy は正解率（正しく分類されたサンプルの割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "ClassificationError")
	}
	return 1 - acc, nil
}

// AccuracyMatrix は列ベクトル（n×1行列）形式の入力に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("AccuracyMatrix", "empty matrix")
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("AccuracyMatrix", "must be a column vector (n×1 matrix)")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("AccuracyMatrix", rTrue, rPred, 0)
	}

	return Accuracy(columnToVec(yTrue), columnToVec(yPred))
}

func columnToVec(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}

// AccuracyScore は任意の比較可能なラベル型に対する正解率を計算する。
// 空の入力に対しては UndefinedMetricWarning を発生させて 0 を返す。
func AccuracyScore[L comparable](yTrue, yPred []L) (float64, error) {
	loss, err := ZeroOneLoss(yTrue, yPred, true)
	if err != nil {
		return 0, errors.Wrap(err, "AccuracyScore")
	}
	if len(yTrue) == 0 {
		return 0, nil
	}
	return 1 - loss, nil
}

// ZeroOneLoss は予測ラベルと正解ラベルの不一致を数える。
//
// normalize が true の場合は不一致の割合を、false の場合は不一致の件数を返す。
// 長さが異なる場合は DimensionError を返す。
func ZeroOneLoss[L comparable](yTrue, yPred []L, normalize bool) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, errors.NewDimensionError("ZeroOneLoss", len(yTrue), len(yPred), 0)
	}
	if len(yTrue) == 0 {
		if normalize {
			errors.Warn(errors.NewUndefinedMetricWarning("zero_one_loss", "no samples", 0))
		}
		return 0, nil
	}

	mismatches := 0
	for i := range yTrue {
		if yTrue[i] != yPred[i] {
			mismatches++
		}
	}

	if normalize {
		return float64(mismatches) / float64(len(yTrue)), nil
	}
	return float64(mismatches), nil
}

// ConfusionMatrix は混同行列を計算する。
//
// 行が正解ラベル、列が予測ラベルで、順序は labels に従う。
// labels に含まれないラベルを持つサンプルは集計されない。
func ConfusionMatrix[L comparable](yTrue, yPred []L, labels []L) (*mat.Dense, error) {
	if len(labels) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "labels must not be empty")
	}
	if len(yTrue) != len(yPred) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}

	index := make(map[L]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	cm := mat.NewDense(len(labels), len(labels), nil)
	for i := range yTrue {
		r, okTrue := index[yTrue[i]]
		c, okPred := index[yPred[i]]
		if !okTrue || !okPred {
			continue
		}
		cm.Set(r, c, cm.At(r, c)+1)
	}
	return cm, nil
}
