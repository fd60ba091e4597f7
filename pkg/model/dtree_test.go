package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pressureData labels rows with x[1] < 1000 as 1, others as 0. Column 0 is
// noise.
func pressureData(n int, seed int64) ([][]float64, []int) {
	rnd := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range n {
		pressure := 940 + rnd.Float64()*120
		X[i] = []float64{rnd.Float64() * 40, pressure}
		if pressure < 1000 {
			y[i] = 1
		}
	}
	return X, y
}

func TestFitPredictSeparable(t *testing.T) {
	X, y := pressureData(200, 1)
	tree := NewDecisionTreeClassifier()
	require.NoError(t, tree.Fit(X, y))

	assert.Equal(t, y, tree.Predict(X), "unconstrained tree must fit its training data")
	assert.Equal(t, []int{1, 0}, tree.Predict([][]float64{{10, 950}, {10, 1050}}))
	assert.Equal(t, []int{0, 1}, tree.Classes())
	assert.Equal(t, 2, tree.NumFeatures())

	root := tree.Tree()
	require.NotNil(t, root)
	assert.False(t, root.Leaf)
	assert.Equal(t, 1, root.Feature)
	assert.InDelta(t, 1000, root.Threshold, 2)
	assert.Equal(t, 1, root.Depth())
	assert.Equal(t, 2, root.Leaves())
	assert.Equal(t, 200, root.Samples)
}

// noisyData has three features and labels unrelated to them, so the tree
// grows deep.
func noisyData(n int) ([][]float64, []int) {
	rnd := rand.New(rand.NewSource(3))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range X {
		X[i] = []float64{rnd.Float64(), rnd.Float64(), float64(rnd.Intn(5))}
		if rnd.Float64() < 0.4 {
			y[i] = 1
		}
	}
	return X, y
}

func TestFitDeterministic(t *testing.T) {
	X, y := noisyData(300)
	a := NewDecisionTreeClassifier(WithRandomState(42))
	b := NewDecisionTreeClassifier(WithRandomState(42))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Tree(), b.Tree())
}

func TestMaxFeaturesSeeded(t *testing.T) {
	X, y := noisyData(300)
	a := NewDecisionTreeClassifier(WithMaxFeatures(2), WithRandomState(7))
	b := NewDecisionTreeClassifier(WithMaxFeatures(2), WithRandomState(7))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Tree(), b.Tree())

	// Sampling every feature is the same as no sampling at all.
	all := NewDecisionTreeClassifier(WithMaxFeatures(3), WithRandomState(7))
	full := NewDecisionTreeClassifier()
	require.NoError(t, all.Fit(X, y))
	require.NoError(t, full.Fit(X, y))
	assert.Equal(t, full.Tree(), all.Tree())
}

func TestTieBreaksOnLowestFeature(t *testing.T) {
	// Both columns separate the classes perfectly.
	X := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	y := []int{0, 0, 1, 1}
	for range 20 {
		tree := NewDecisionTreeClassifier()
		require.NoError(t, tree.Fit(X, y))
		root := tree.Tree()
		assert.Equal(t, 0, root.Feature)
		assert.Equal(t, 2.5, root.Threshold)
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		y    []int
		opts []Option
	}{
		{"empty", nil, nil, nil},
		{"length mismatch", [][]float64{{1}}, []int{0, 1}, nil},
		{"ragged", [][]float64{{1, 2}, {1}}, []int{0, 1}, nil},
		{"no features", [][]float64{{}}, []int{0}, nil},
		{"nan", [][]float64{{math.NaN()}}, []int{0}, nil},
		{"inf", [][]float64{{math.Inf(1)}}, []int{0}, nil},
		{"criterion", [][]float64{{1}}, []int{0}, []Option{WithCriterion("mse")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewDecisionTreeClassifier(tt.opts...)
			assert.Error(t, tree.Fit(tt.X, tt.y))
			assert.False(t, tree.Trained())
		})
	}
}

func TestUntrainedPredict(t *testing.T) {
	tree := NewDecisionTreeClassifier()
	assert.Nil(t, tree.Predict([][]float64{{1}}))
	assert.Nil(t, tree.PredictProba([][]float64{{1}}))
	assert.Nil(t, tree.Tree())
}

func TestPredictProba(t *testing.T) {
	// Identical rows with mixed labels cannot be split.
	X := [][]float64{{1}, {1}, {1}, {1}}
	y := []int{1, 1, 1, 0}
	tree := NewDecisionTreeClassifier()
	require.NoError(t, tree.Fit(X, y))

	assert.Equal(t, [][]float64{{0.25, 0.75}}, tree.PredictProba([][]float64{{1}}))
	assert.Equal(t, []int{1}, tree.Predict([][]float64{{5}}))
	assert.True(t, tree.Tree().Leaf)
	assert.Equal(t, []float64{0}, tree.FeatureImportances())
}

func TestMaxDepth(t *testing.T) {
	X, y := pressureData(100, 5)
	X = append(X, []float64{1, 900}, []float64{2, 900})
	y = append(y, 0, 1)
	tree := NewDecisionTreeClassifier(WithMaxDepth(1))
	require.NoError(t, tree.Fit(X, y))
	assert.LessOrEqual(t, tree.Tree().Depth(), 1)
}

func TestEntropyCriterion(t *testing.T) {
	X, y := pressureData(100, 9)
	tree := NewDecisionTreeClassifier(WithCriterion(CriterionEntropy))
	require.NoError(t, tree.Fit(X, y))
	assert.Equal(t, y, tree.Predict(X))
	assert.InDelta(t, 1.0, tree.Tree().Impurity, 0.2)
}

func TestCategoricalSplits(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {1}, {0}, {2}}
	y := []int{0, 1, 0, 1, 0, 0}
	tree := NewDecisionTreeClassifier(WithCategoricalSplits(true))
	require.NoError(t, tree.Fit(X, y))

	root := tree.Tree()
	assert.True(t, root.Categorical)
	assert.Equal(t, 1.0, root.Threshold)
	assert.Equal(t, []int{0, 1, 0}, tree.Predict([][]float64{{0}, {1}, {2}}))
}

func TestFeatureImportances(t *testing.T) {
	X, y := pressureData(200, 11)
	tree := NewDecisionTreeClassifier()
	require.NoError(t, tree.Fit(X, y))

	imp := tree.FeatureImportances()
	require.Len(t, imp, 2)
	assert.InDelta(t, 1.0, imp[0]+imp[1], 1e-9)
	assert.Equal(t, 0.0, imp[0])
	assert.Equal(t, 1.0, imp[1])
}

func TestImpurity(t *testing.T) {
	assert.Equal(t, 0.5, giniFromCounts([]int{5, 5}))
	assert.Equal(t, 0.0, giniFromCounts([]int{0, 0}))
	assert.Equal(t, 1.0, entropyFromCounts([]int{3, 3}))
	assert.Equal(t, 0.0, entropyFromCounts([]int{4, 0}))
}
