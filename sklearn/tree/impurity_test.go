package tree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGini_PureIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Gini([]string{"Yes"}))
	assert.Equal(t, 0.0, Gini([]string{"Yes", "Yes", "Yes"}))
	assert.Equal(t, 0.0, Gini([]int{7, 7}))
}

func TestGini_Values(t *testing.T) {
	assert.InDelta(t, 0.5, Gini([]int{0, 1}), 1e-12)
	assert.InDelta(t, 0.375, Gini([]string{"a", "a", "a", "b"}), 1e-12)
	assert.InDelta(t, 2.0/3.0, Gini([]int{0, 1, 2}), 1e-12)
	assert.Equal(t, 0.0, Gini([]int{}))
}

func TestGini_BoundedByUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		k := 1 + rng.Intn(5)
		labels := make([]int, 1+rng.Intn(30))
		seen := map[int]bool{}
		for i := range labels {
			labels[i] = rng.Intn(k)
			seen[labels[i]] = true
		}
		distinct := float64(len(seen))
		g := Gini(labels)
		assert.GreaterOrEqual(t, g, 0.0)
		assert.LessOrEqual(t, g, 1-1/distinct+1e-12)
	}

	// uniform over k classes attains the bound
	for k := 1; k <= 5; k++ {
		labels := make([]int, 0, 3*k)
		for i := 0; i < 3*k; i++ {
			labels = append(labels, i%k)
		}
		assert.InDelta(t, 1-1/float64(k), Gini(labels), 1e-12)
	}
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy([]string{"x", "x"}))
	assert.InDelta(t, 1.0, Entropy([]string{"x", "y"}), 1e-12)
	assert.InDelta(t, math.Log2(3), Entropy([]int{1, 2, 3}), 1e-12)
}

func TestMajorityLabel_TiesGoToFirstEncountered(t *testing.T) {
	got, ok := majorityLabel([]string{"No", "Yes", "Yes", "No"})
	assert.True(t, ok)
	assert.Equal(t, "No", got)

	got, ok = majorityLabel([]string{"Yes", "No", "No"})
	assert.True(t, ok)
	assert.Equal(t, "No", got)

	_, ok = majorityLabel([]string{})
	assert.False(t, ok)
}

func TestCountLabels_Order(t *testing.T) {
	distinct, counts := countLabels([]string{"b", "a", "b", "c"})
	assert.Equal(t, []string{"b", "a", "c"}, distinct)
	assert.Equal(t, []int{2, 1, 1}, counts)
}
