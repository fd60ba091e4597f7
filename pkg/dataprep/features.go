package dataprep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Dataset is a fully numeric table ready for training.
type Dataset struct {
	Features []string
	X        [][]float64
	Y        []int
	// Rows is the number of data rows in the source file, Dropped how many
	// of them were discarded for missing fields.
	Rows    int
	Dropped int
}

// Extract builds a Dataset from df using the feature columns in the given
// order and the label column. Incomplete rows are dropped first; a cell
// that is present but not a finite number, or a label outside the known
// spellings, is an error. Surrounding spaces in a cell are ignored.
func Extract(df dataframe.DataFrame, features []string, label string) (*Dataset, error) {
	cols := append(append([]string(nil), features...), label)
	rows, err := CompleteRows(df, cols)
	if err != nil {
		return nil, err
	}

	raw := make([][]string, len(features))
	for j, name := range features {
		raw[j] = df.Col(name).Records()
	}
	labels := df.Col(label).Records()

	ds := &Dataset{
		Features: append([]string(nil), features...),
		X:        make([][]float64, 0, len(rows)),
		Y:        make([]int, 0, len(rows)),
		Rows:     df.Nrow(),
		Dropped:  df.Nrow() - len(rows),
	}
	for _, i := range rows {
		x := make([]float64, len(features))
		for j := range features {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw[j][i]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				// +2: header line and 1-based numbering.
				return nil, fmt.Errorf("dataprep: line %d column %s: %q is not a number", i+2, features[j], raw[j][i])
			}
			x[j] = v
		}
		l, err := ParseLabel(strings.TrimSpace(labels[i]))
		if err != nil {
			return nil, fmt.Errorf("dataprep: line %d column %s: %w", i+2, label, err)
		}
		ds.X = append(ds.X, x)
		ds.Y = append(ds.Y, int(l))
	}
	return ds, nil
}

// Column returns column j of X.
func Column(X [][]float64, j int) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = row[j]
	}
	return out
}
