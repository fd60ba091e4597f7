package loader

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n int) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range n {
		X[i] = []float64{float64(i)}
		y[i] = i % 2
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	tests := []struct {
		n, train, test int
	}{
		{10, 8, 2},
		{11, 8, 3},
		{1, 0, 1},
		{0, 0, 0},
		{2500, 2000, 500},
	}
	for _, tt := range tests {
		X, y := rows(tt.n)
		XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, 0.2, 42)
		assert.Len(t, XTrain, tt.train, "n=%d", tt.n)
		assert.Len(t, yTrain, tt.train, "n=%d", tt.n)
		assert.Len(t, XTest, tt.test, "n=%d", tt.n)
		assert.Len(t, yTest, tt.test, "n=%d", tt.n)
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := rows(50)
	a1, b1, c1, d1 := TrainTestSplit(X, y, 0.2, 42)
	a2, b2, c2, d2 := TrainTestSplit(X, y, 0.2, 42)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, d1, d2)

	_, other, _, _ := TrainTestSplit(X, y, 0.2, 7)
	assert.NotEqual(t, b1, other)
}

func TestTrainTestSplitPartition(t *testing.T) {
	X, y := rows(40)
	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, 0.2, 42)

	var seen []int
	for i, row := range append(append([][]float64(nil), XTrain...), XTest...) {
		seen = append(seen, int(row[0]))
		label := append(append([]int(nil), yTrain...), yTest...)[i]
		assert.Equal(t, int(row[0])%2, label, "label must follow its row")
	}
	sort.Ints(seen)
	require.Len(t, seen, 40)
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
}

func TestHeldOutSize(t *testing.T) {
	assert.Equal(t, 2, HeldOutSize(10, 0.2))
	assert.Equal(t, 3, HeldOutSize(11, 0.2))
	assert.Equal(t, 0, HeldOutSize(0, 0.2))
	assert.Equal(t, 4, HeldOutSize(4, 1.5))
}
