package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewConfusionMatrix(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1, 0, 0}
	yPred := []int{1, 0, 0, 1, 1, 0, 0}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, ConfusionMatrix{TN: 3, FP: 1, FN: 1, TP: 2}, cm)
	assert.Equal(t, len(yTrue), cm.Total())

	d := cm.Dense()
	assert.Equal(t, 3.0, d.At(0, 0))
	assert.Equal(t, 1.0, d.At(0, 1))
	assert.Equal(t, 1.0, d.At(1, 0))
	assert.Equal(t, 2.0, d.At(1, 1))
}

func TestNewConfusionMatrixErrors(t *testing.T) {
	_, err := NewConfusionMatrix([]int{1}, nil)
	assert.Error(t, err)

	_, err = NewConfusionMatrix([]int{2}, []int{1})
	assert.Error(t, err)
}

func TestEmptyConfusionMatrix(t *testing.T) {
	cm, err := NewConfusionMatrix(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, cm.Total())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, nil), cm.Dense()))
}
