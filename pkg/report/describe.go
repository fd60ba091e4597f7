package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/dataprep"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/stats"
)

// WriteDescribe prints per-feature statistics of X, one row per schema
// feature.
func WriteDescribe(w io.Writer, schema pipeline.Schema, X [][]float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "FEATURE\tCOUNT\tMEAN\tSTD\tMIN\t25%\t50%\t75%\tMAX\tOUTLIERS\t")
	for j, name := range schema.FeatureNames {
		s := stats.Describe(dataprep.Column(X, j))
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n",
			name, s.Count, s.Mean, s.Std, s.Min, s.P25, s.Median, s.P75, s.Max, s.Outliers)
	}
	return tw.Flush()
}

// WriteClassBalance prints how many rows of y fall in each class.
func WriteClassBalance(w io.Writer, y []int) error {
	counts := make([]int, 2)
	for _, l := range y {
		if l == 0 || l == 1 {
			counts[l]++
		}
	}
	for l, n := range counts {
		share := 0.0
		if len(y) > 0 {
			share = float64(n) / float64(len(y))
		}
		if _, err := fmt.Fprintf(w, "%-8s %5d  (%.1f%%)\n", data.Label(l), n, 100*share); err != nil {
			return err
		}
	}
	return nil
}
