// Package pipeline is the prepare → train → predict core of the rainfall
// classifier. Every function here is synchronous; a trained *Model is
// immutable and safe to share between goroutines.
package pipeline

import (
	"fmt"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/dataprep"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/loader"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/model"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/stats"
)

// Defaults used when options are left zero.
const (
	DefaultTestRatio = 0.2
	DefaultSeed      = 42
)

// PrepareOptions configures Prepare. Zero values take the defaults.
type PrepareOptions struct {
	Schema    Schema
	TestRatio float64
	Seed      *int64
}

// Split is the deterministic train/held-out partition of a dataset.
type Split struct {
	Schema Schema
	XTrain [][]float64
	XTest  [][]float64
	YTrain []int
	YTest  []int

	Rows    int // data rows in the file
	Dropped int // rows discarded for missing fields
}

// Prepare loads the CSV at path, drops incomplete rows, encodes the label
// column to {0,1} and splits the result. The same file and options always
// give the same split. All failures are data_load errors.
func Prepare(path string, opts PrepareOptions) (*Split, error) {
	schema := opts.Schema
	if schema.Width() == 0 {
		schema = DefaultSchema
	}
	ratio := opts.TestRatio
	if ratio == 0 {
		ratio = DefaultTestRatio
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, dataLoadError(fmt.Sprintf("test ratio %v outside (0,1)", ratio), nil)
	}
	seed := int64(DefaultSeed)
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	df, err := data.ReadFrame(path)
	if err != nil {
		return nil, dataLoadError("read "+path, err)
	}
	ds, err := dataprep.Extract(df, schema.FeatureNames, schema.Label)
	if err != nil {
		return nil, dataLoadError("prepare "+path, err)
	}

	XTrain, XTest, yTrain, yTest := loader.TrainTestSplit(ds.X, ds.Y, ratio, seed)
	return &Split{
		Schema:  schema.clone(),
		XTrain:  XTrain,
		XTest:   XTest,
		YTrain:  yTrain,
		YTest:   yTest,
		Rows:    ds.Rows,
		Dropped: ds.Dropped,
	}, nil
}

// TrainOptions configures Train.
type TrainOptions struct {
	Seed      int64
	Criterion string // model.CriterionGini when empty
	// MaxFeatures, when positive, samples that many features at each node
	// using Seed. Zero considers every feature.
	MaxFeatures int
}

// Model is a trained classifier bound to the schema it was trained on.
type Model struct {
	schema Schema
	tree   *model.DecisionTreeClassifier
	ranges [][2]float64 // per-feature training min/max
}

// Train fits an unconstrained decision tree on X, y. It fails with a
// training error when the set is empty, malformed, or holds a single class.
func Train(schema Schema, X [][]float64, y []int, opts TrainOptions) (*Model, error) {
	if len(X) == 0 {
		return nil, trainingError("empty training set", nil)
	}
	if len(X) != len(y) {
		return nil, trainingError(fmt.Sprintf("%d rows but %d labels", len(X), len(y)), nil)
	}
	for i, row := range X {
		if len(row) != schema.Width() {
			return nil, trainingError(fmt.Sprintf("row %d has %d features, schema has %d", i, len(row), schema.Width()), nil)
		}
	}
	distinct := map[int]struct{}{}
	for _, l := range y {
		if l != int(data.NoRain) && l != int(data.Rain) {
			return nil, trainingError(fmt.Sprintf("label %d is not 0 or 1", l), nil)
		}
		distinct[l] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, trainingError("training labels hold a single class", nil)
	}

	criterion := opts.Criterion
	if criterion == "" {
		criterion = model.CriterionGini
	}
	if opts.MaxFeatures < 0 {
		return nil, trainingError(fmt.Sprintf("max features %d is negative", opts.MaxFeatures), nil)
	}
	tree := model.NewDecisionTreeClassifier(
		model.WithRandomState(opts.Seed),
		model.WithCriterion(criterion),
		model.WithMaxFeatures(opts.MaxFeatures),
	)
	if err := tree.Fit(X, y); err != nil {
		return nil, trainingError("fit", err)
	}

	ranges := make([][2]float64, schema.Width())
	for j := range ranges {
		lo, hi := stats.MinMax(dataprep.Column(X, j))
		ranges[j] = [2]float64{lo, hi}
	}
	return &Model{schema: schema.clone(), tree: tree, ranges: ranges}, nil
}

// Schema returns the feature layout the model expects.
func (m *Model) Schema() Schema { return m.schema.clone() }

// Tree returns a copy of the fitted tree structure.
func (m *Model) Tree() *model.Node { return m.tree.Tree() }

// FeatureImportances returns one weight per schema feature, summing to 1
// unless the tree is a single leaf.
func (m *Model) FeatureImportances() []float64 { return m.tree.FeatureImportances() }

// PredictRow classifies one schema-ordered row.
func (m *Model) PredictRow(row []float64) (data.Label, error) {
	if len(row) != m.schema.Width() {
		return data.NoRain, inputError("", fmt.Sprintf("row has %d values, model expects %d", len(row), m.schema.Width()), nil)
	}
	if err := checkFinite(m.schema, row); err != nil {
		return data.NoRain, err
	}
	return data.Label(m.tree.Predict([][]float64{row})[0]), nil
}

// Predict classifies one sample. Its feature names must match the
// training schema exactly.
func (m *Model) Predict(s Sample) (data.Label, error) {
	row, err := s.Row(m.schema)
	if err != nil {
		return data.NoRain, err
	}
	return m.PredictRow(row)
}

// Probability returns the training share of rain in the leaf s falls into.
func (m *Model) Probability(s Sample) (float64, error) {
	row, err := s.Row(m.schema)
	if err != nil {
		return 0, err
	}
	if err := checkFinite(m.schema, row); err != nil {
		return 0, err
	}
	probs := m.tree.PredictProba([][]float64{row})[0]
	for i, c := range m.tree.Classes() {
		if c == int(data.Rain) {
			return probs[i], nil
		}
	}
	return 0, nil
}

// OutOfRange lists the features of s that fall outside the values seen in
// training, in schema order.
func (m *Model) OutOfRange(s Sample) []string {
	var out []string
	for j, name := range m.schema.FeatureNames {
		v, ok := s[name]
		if !ok {
			continue
		}
		if v < m.ranges[j][0] || v > m.ranges[j][1] {
			out = append(out, name)
		}
	}
	return out
}

// PredictMatrix classifies every schema-ordered row of X.
func (m *Model) PredictMatrix(X [][]float64) ([]int, error) {
	out := make([]int, len(X))
	for i, row := range X {
		l, err := m.PredictRow(row)
		if err != nil {
			return nil, err
		}
		out[i] = int(l)
	}
	return out, nil
}
