package dataprep

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/series"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
)

// NormalizeResult counts how the rain column was rewritten.
type NormalizeResult struct {
	Rows      int
	Rewritten int
	Untouched int
}

// UpdatedPath returns the sibling path the normalized file is written to:
// "_updated" is inserted before the extension.
func UpdatedPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == ".gz" {
		inner := filepath.Ext(base)
		base = strings.TrimSuffix(base, inner)
		ext = inner
	}
	if ext == "" {
		ext = ".csv"
	}
	return base + "_updated" + ext
}

// NormalizeRainFile reads the raw dataset at input, rewrites the rain
// column from its free-text spelling to True/False, and writes the result
// to output. Other columns are copied as they are.
func NormalizeRainFile(input, output string) (NormalizeResult, error) {
	df, err := data.ReadFrame(input)
	if err != nil {
		return NormalizeResult{}, err
	}
	if missing := data.HasColumns(df, data.ColRain); len(missing) > 0 {
		return NormalizeResult{}, fmt.Errorf("dataprep: %s has no %s column", input, data.ColRain)
	}

	col := df.Col(data.ColRain)
	values := col.Records()
	res := NormalizeResult{Rows: len(values)}
	for i, v := range values {
		if col.Elem(i).IsNA() {
			res.Untouched++
			continue
		}
		out, ok := NormalizeRainText(v)
		values[i] = out
		if ok {
			res.Rewritten++
		} else {
			res.Untouched++
		}
	}

	df = df.Mutate(series.New(values, series.String, data.ColRain))
	if df.Err != nil {
		return res, fmt.Errorf("dataprep: rewrite %s: %w", data.ColRain, df.Err)
	}
	if err := data.WriteFrame(output, df); err != nil {
		return res, err
	}
	return res, nil
}
