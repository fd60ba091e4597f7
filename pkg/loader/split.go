package loader

import (
	"math"
	"math/rand"
)

// TrainTestSplit splits X, y into train and test sets by ratio. Rows are
// shuffled with a private source seeded by seed, so the same input and
// seed always produce the same partition. The test set receives
// ceil(n*testRatio) rows.
func TrainTestSplit(X [][]float64, y []int, testRatio float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []int) {
	n := len(X)
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := HeldOutSize(n, testRatio)
	for i := range n {
		if i < nTest {
			XTest = append(XTest, X[indices[i]])
			yTest = append(yTest, y[indices[i]])
		} else {
			XTrain = append(XTrain, X[indices[i]])
			yTrain = append(yTrain, y[indices[i]])
		}
	}
	return
}

// HeldOutSize is the number of held-out rows for n samples.
func HeldOutSize(n int, testRatio float64) int {
	k := int(math.Ceil(float64(n) * testRatio))
	if k > n {
		k = n
	}
	return k
}
