package pipeline

import "github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"

// Schema describes the structure of a dataset: the feature columns in
// training order and the label column.
type Schema struct {
	FeatureNames []string
	Label        string
}

// DefaultSchema is the weather dataset layout.
var DefaultSchema = Schema{
	FeatureNames: data.FeatureColumns,
	Label:        data.ColRain,
}

// Index returns the position of a feature, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s.FeatureNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Width is the number of features.
func (s Schema) Width() int { return len(s.FeatureNames) }

func (s Schema) clone() Schema {
	return Schema{FeatureNames: append([]string(nil), s.FeatureNames...), Label: s.Label}
}
