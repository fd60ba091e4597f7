package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix tabulates binary predictions (labels 0/1) against the
// truth.
type ConfusionMatrix struct {
	TN, FP, FN, TP int
}

// NewConfusionMatrix counts outcomes over aligned yTrue/yPred.
func NewConfusionMatrix(yTrue, yPred []int) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(yTrue) != len(yPred) {
		return cm, errors.New("metrics: yTrue and yPred length mismatch")
	}
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			cm.TP++
		case yTrue[i] == 0 && yPred[i] == 1:
			cm.FP++
		case yTrue[i] == 1 && yPred[i] == 0:
			cm.FN++
		case yTrue[i] == 0 && yPred[i] == 0:
			cm.TN++
		default:
			return ConfusionMatrix{}, errors.New("metrics: labels must be 0 or 1")
		}
	}
	return cm, nil
}

// Total is the number of tabulated rows.
func (c ConfusionMatrix) Total() int { return c.TN + c.FP + c.FN + c.TP }

// Dense returns the matrix with actual classes as rows and predicted
// classes as columns, class 0 first.
func (c ConfusionMatrix) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		float64(c.TN), float64(c.FP),
		float64(c.FN), float64(c.TP),
	})
}
