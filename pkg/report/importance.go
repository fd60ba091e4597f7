package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// Importance is the weight of one feature.
type Importance struct {
	Feature string
	Value   float64
}

// Importances returns the model's feature importances sorted by value,
// highest first. Equal values keep schema order.
func Importances(m *pipeline.Model) []Importance {
	names := m.Schema().FeatureNames
	vals := m.FeatureImportances()
	out := make([]Importance, len(names))
	for j, name := range names {
		out[j] = Importance{Feature: name}
		if j < len(vals) {
			out[j].Value = vals[j]
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Value > out[b].Value })
	return out
}

// WriteImportance prints one line per feature, highest first.
func WriteImportance(w io.Writer, m *pipeline.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tIMPORTANCE")
	fmt.Fprintln(tw, "-------\t----------")
	for _, imp := range Importances(m) {
		fmt.Fprintf(tw, "%s\t%.4f\n", imp.Feature, imp.Value)
	}
	return tw.Flush()
}

// SaveImportancePNG draws a horizontal bar chart, highest feature on top.
func SaveImportancePNG(path string, m *pipeline.Model) error {
	imps := Importances(m)
	values := make(plotter.Values, len(imps))
	names := make([]string, len(imps))
	// NominalY puts the first name at the bottom.
	for i, imp := range imps {
		k := len(imps) - 1 - i
		values[k] = imp.Value
		names[k] = imp.Feature
	}

	p := plot.New()
	p.Title.Text = "Feature Importance"
	p.X.Label.Text = "Importance"

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("report: importance bars: %w", err)
	}
	bars.Horizontal = true
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(names...)
	p.X.Min = 0

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
