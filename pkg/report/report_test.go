package report

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/model"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// pressureModel trains on rows where it rains exactly when Pressure < 1000.
func pressureModel(t *testing.T) (*pipeline.Model, [][]float64, []int) {
	t.Helper()
	rnd := rand.New(rand.NewSource(1))
	var X [][]float64
	var y []int
	for i := 0; i < 60; i++ {
		p := 950 + rnd.Float64()*49
		label := 1
		if i%2 == 0 {
			p = 1001 + rnd.Float64()*49
			label = 0
		}
		X = append(X, []float64{10 + rnd.Float64()*20, 50 + rnd.Float64()*50, rnd.Float64() * 10, rnd.Float64() * 100, p})
		y = append(y, label)
	}
	m, err := pipeline.Train(pipeline.DefaultSchema, X[:48], y[:48], pipeline.TrainOptions{Seed: 42})
	require.NoError(t, err)
	return m, X[48:], y[48:]
}

func TestWriteTree(t *testing.T) {
	m, _, _ := pressureModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, m, TreeOptions{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "|--- Pressure <= "))
	assert.Equal(t, "|   |--- class: Rain", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "|--- Pressure >  "))
	assert.Equal(t, "|   |--- class: No Rain", lines[3])

	var again bytes.Buffer
	require.NoError(t, WriteTree(&again, m, TreeOptions{}))
	assert.Equal(t, buf.String(), again.String())
}

func TestWriteTreeTruncated(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	var X [][]float64
	var y []int
	for i := 0; i < 80; i++ {
		X = append(X, []float64{rnd.Float64(), rnd.Float64(), rnd.Float64(), rnd.Float64(), rnd.Float64()})
		y = append(y, rnd.Intn(2))
	}
	m, err := pipeline.Train(pipeline.DefaultSchema, X, y, pipeline.TrainOptions{Seed: 42})
	require.NoError(t, err)
	require.Greater(t, m.Tree().Depth(), 1)

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, m, TreeOptions{MaxDepth: 1}))
	assert.Contains(t, buf.String(), "truncated branch of depth")
	assert.NotContains(t, buf.String(), "|   |   |---")
}

func TestConfusion(t *testing.T) {
	m, XTest, yTest := pressureModel(t)

	cm, err := Confusion(m, XTest, yTest)
	require.NoError(t, err)
	assert.Equal(t, len(yTest), cm.Total())
	assert.Equal(t, 0, cm.FP+cm.FN)

	s := Score(cm)
	assert.Equal(t, 1.0, s.Accuracy)
	assert.Equal(t, 1.0, s.F1)

	_, err = Confusion(m, XTest, yTest[1:])
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	s := Score(model.ConfusionMatrix{TN: 50, FP: 10, FN: 5, TP: 35})
	assert.InDelta(t, 0.85, s.Accuracy, 1e-9)
	assert.InDelta(t, 35.0/45, s.Precision, 1e-9)
	assert.InDelta(t, 35.0/40, s.Recall, 1e-9)
	assert.InDelta(t, 70.0/85, s.F1, 1e-9)

	assert.Equal(t, Scores{}, Score(model.ConfusionMatrix{}))
	assert.Equal(t, 0.0, Score(model.ConfusionMatrix{TN: 4}).Precision)
}

func TestWriteConfusion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfusion(&buf, model.ConfusionMatrix{TN: 3, FP: 1, FN: 2, TP: 4}))
	out := buf.String()
	assert.Contains(t, out, "No Rain")
	assert.Contains(t, out, "samples:   10")
	assert.Contains(t, out, "accuracy:  0.7000")
}

func TestImportances(t *testing.T) {
	m, _, _ := pressureModel(t)
	imps := Importances(m)
	require.Len(t, imps, 5)
	assert.Equal(t, "Pressure", imps[0].Feature)
	assert.InDelta(t, 1.0, imps[0].Value, 1e-9)
	assert.Equal(t, "Temperature", imps[1].Feature)

	var buf bytes.Buffer
	require.NoError(t, WriteImportance(&buf, m))
	assert.Contains(t, buf.String(), "Pressure")
	assert.Contains(t, buf.String(), "1.0000")
}

func TestWriteDescribe(t *testing.T) {
	X := [][]float64{{1, 2, 3, 4, 5}, {3, 2, 3, 4, 7}}
	var buf bytes.Buffer
	require.NoError(t, WriteDescribe(&buf, pipeline.DefaultSchema, X))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Temperature")
	assert.Contains(t, lines[1], "2.00")
	assert.Contains(t, lines[5], "Pressure")

	buf.Reset()
	require.NoError(t, WriteClassBalance(&buf, []int{0, 1, 1, 1}))
	assert.Contains(t, buf.String(), "75.0%")
}

func TestSavePNGs(t *testing.T) {
	m, XTest, yTest := pressureModel(t)
	dir := t.TempDir()
	cm, err := Confusion(m, XTest, yTest)
	require.NoError(t, err)

	files := map[string]func(string) error{
		"decision_tree.png":      func(p string) error { return SaveTreePNG(p, m, TreeOptions{}) },
		"confusion_matrix.png":   func(p string) error { return SaveConfusionPNG(p, cm) },
		"feature_importance.png": func(p string) error { return SaveImportancePNG(p, m) },
	}
	for name, save := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, save(path), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
