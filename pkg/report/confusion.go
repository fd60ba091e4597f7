package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/model"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// Confusion predicts every held-out row and tabulates the result against
// yTest. The cells sum to len(yTest).
func Confusion(m *pipeline.Model, XTest [][]float64, yTest []int) (model.ConfusionMatrix, error) {
	pred, err := m.PredictMatrix(XTest)
	if err != nil {
		return model.ConfusionMatrix{}, err
	}
	return model.NewConfusionMatrix(yTest, pred)
}

// Scores holds the summary metrics of a confusion matrix, for the Rain
// class.
type Scores struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// evaluationMatrix converts cm to golearn's reference → predicted → count
// form keyed by class name.
func evaluationMatrix(cm model.ConfusionMatrix) evaluation.ConfusionMatrix {
	no, yes := data.NoRain.String(), data.Rain.String()
	return evaluation.ConfusionMatrix{
		no:  {no: cm.TN, yes: cm.FP},
		yes: {no: cm.FN, yes: cm.TP},
	}
}

// Score computes accuracy, precision, recall and F1 for the Rain class.
// Undefined ratios are 0.
func Score(cm model.ConfusionMatrix) Scores {
	if cm.Total() == 0 {
		return Scores{}
	}
	ec := evaluationMatrix(cm)
	rain := data.Rain.String()
	return Scores{
		Accuracy:  finite(evaluation.GetAccuracy(ec)),
		Precision: finite(evaluation.GetPrecision(rain, ec)),
		Recall:    finite(evaluation.GetRecall(rain, ec)),
		F1:        finite(evaluation.GetF1Score(rain, ec)),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// WriteConfusion prints the 2x2 table (rows actual, columns predicted)
// followed by the scores.
func WriteConfusion(w io.Writer, cm model.ConfusionMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "actual \\ predicted\t%s\t%s\n", data.NoRain, data.Rain)
	fmt.Fprintf(tw, "%s\t%d\t%d\n", data.NoRain, cm.TN, cm.FP)
	fmt.Fprintf(tw, "%s\t%d\t%d\n", data.Rain, cm.FN, cm.TP)
	if err := tw.Flush(); err != nil {
		return err
	}

	s := Score(cm)
	_, err := fmt.Fprintf(w, "\nsamples:   %d\naccuracy:  %.4f\nprecision: %.4f\nrecall:    %.4f\nf1:        %.4f\n",
		cm.Total(), s.Accuracy, s.Precision, s.Recall, s.F1)
	return err
}

// confusionGrid adapts a 2x2 count matrix to plotter.GridXYZ. Column c is
// the predicted class; row r the actual class, drawn top-down.
type confusionGrid struct{ m *mat.Dense }

func (g confusionGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g confusionGrid) Z(c, r int) float64 { return g.m.At(g.row(r), c) }
func (g confusionGrid) X(c int) float64    { return float64(c) }
func (g confusionGrid) Y(r int) float64    { return float64(r) }

// row maps plot row r (bottom-up) to matrix row (top-down).
func (g confusionGrid) row(r int) int {
	rows, _ := g.m.Dims()
	return rows - 1 - r
}

// SaveConfusionPNG draws cm as an annotated heatmap.
func SaveConfusionPNG(path string, cm model.ConfusionMatrix) error {
	grid := confusionGrid{m: cm.Dense()}

	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	var xys plotter.XYs
	var labels []string
	cols, rows := grid.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			labels = append(labels, fmt.Sprintf("%.0f", grid.Z(c, r)))
		}
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("report: confusion labels: %w", err)
	}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].XAlign = text.XCenter
		lbls.TextStyle[i].YAlign = text.YCenter
		lbls.TextStyle[i].Font.Size = vg.Points(14)
	}
	p.Add(lbls)

	p.X.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: data.NoRain.String()},
		{Value: 1, Label: data.Rain.String()},
	})
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: data.Rain.String()},
		{Value: 1, Label: data.NoRain.String()},
	})

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
