// Package model_selection はデータセットを学習用・検証用・テスト用に分割する機能を提供する
package model_selection

import (
	"math/rand"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// Split は分割後の行インデックスを保持する
type Split struct {
	Train      []int
	Validation []int
	Test       []int
}

// TrainValidationTestSplit はn行を乱数シードに従ってシャッフルし、3つに分割する。
// validationとtestは全体に対する割合（0以上、合計1未満）。
// 各集合のサイズは切り捨てで決まり、残りは全て学習用になる。
//
// 使用例:
//
//	split, err := model_selection.TrainValidationTestSplit(len(labels), 0.2, 0.2, 42)
//	trainX := model_selection.Take(samples, split.Train)
func TrainValidationTestSplit(n int, validation, test float64, seed int64) (Split, error) {
	if n <= 0 {
		return Split{}, errors.NewModelError("TrainValidationTestSplit", "empty data", errors.ErrEmptyData)
	}
	if validation < 0 || validation >= 1 {
		return Split{}, errors.NewValidationError("validation_size", "must be in [0, 1)", validation)
	}
	if test < 0 || test >= 1 {
		return Split{}, errors.NewValidationError("test_size", "must be in [0, 1)", test)
	}
	if validation+test >= 1 {
		return Split{}, errors.NewValidationError("validation_size+test_size", "must be less than 1", validation+test)
	}

	nVal := int(float64(n) * validation)
	nTest := int(float64(n) * test)
	if n-nVal-nTest < 1 {
		return Split{}, errors.NewValueError("TrainValidationTestSplit", "no rows left for training")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return Split{
		Test:       perm[:nTest],
		Validation: perm[nTest : nTest+nVal],
		Train:      perm[nTest+nVal:],
	}, nil
}

// Take はidxの順にsの要素を取り出した新しいスライスを返す
func Take[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
