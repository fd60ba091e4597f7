package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
)

// Sample is one observation keyed by feature name.
type Sample map[string]float64

// SampleOf builds a Sample from a weather record.
func SampleOf(r data.Record) Sample {
	return Sample{
		data.ColTemperature: r.Temperature,
		data.ColHumidity:    r.Humidity,
		data.ColWindSpeed:   r.WindSpeed,
		data.ColCloudCover:  r.CloudCover,
		data.ColPressure:    r.Pressure,
	}
}

// Row orders s by schema. Missing and unknown feature names are
// input_validation errors.
func (s Sample) Row(schema Schema) ([]float64, error) {
	row := make([]float64, schema.Width())
	for j, name := range schema.FeatureNames {
		v, ok := s[name]
		if !ok {
			return nil, inputError(name, "missing feature", nil)
		}
		row[j] = v
	}
	if len(s) != schema.Width() {
		var unknown []string
		for name := range s {
			if schema.Index(name) < 0 {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		return nil, inputError(unknown[0], "unknown feature", nil)
	}
	return row, nil
}

// ParseSample parses raw text fields, as typed by a user, into a Sample.
// Every schema feature must be present and hold a finite number.
func ParseSample(schema Schema, fields map[string]string) (Sample, error) {
	for name := range fields {
		if schema.Index(name) < 0 {
			return nil, inputError(name, "unknown feature", nil)
		}
	}
	s := make(Sample, schema.Width())
	for _, name := range schema.FeatureNames {
		raw, ok := fields[name]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			return nil, inputError(name, "value required", nil)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, inputError(name, fmt.Sprintf("%q is not a number", raw), nil)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, inputError(name, fmt.Sprintf("%q is not a finite number", raw), nil)
		}
		s[name] = v
	}
	return s, nil
}

func checkFinite(schema Schema, row []float64) error {
	for j, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return inputError(schema.FeatureNames[j], "value is not a finite number", nil)
		}
	}
	return nil
}
