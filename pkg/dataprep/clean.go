package dataprep

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
)

// CompleteRows returns the indices of rows with no missing cell in cols,
// in file order. Rows with any missing field are dropped; nothing is
// imputed.
func CompleteRows(df dataframe.DataFrame, cols []string) ([]int, error) {
	if missing := data.HasColumns(df, cols...); len(missing) > 0 {
		return nil, fmt.Errorf("dataprep: missing columns %v", missing)
	}
	columns := make([]series.Series, len(cols))
	for j, name := range cols {
		columns[j] = df.Col(name)
	}

	rows := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		complete := true
		for _, s := range columns {
			if s.Elem(i).IsNA() {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, i)
		}
	}
	return rows, nil
}
