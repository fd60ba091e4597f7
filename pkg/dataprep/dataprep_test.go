package dataprep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
)

func frameFrom(t *testing.T, csv string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	return path
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want data.Label
		err  bool
	}{
		{"True", data.Rain, false},
		{"False", data.NoRain, false},
		{"true", data.Rain, false},
		{"false", data.NoRain, false},
		{"1", data.Rain, false},
		{"0", data.NoRain, false},
		{"rain", data.Rain, false},
		{"no rain", data.NoRain, false},
		{"TRUE", data.NoRain, true},
		{"Rain", data.NoRain, true},
		{"maybe", data.NoRain, true},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrUnknownLabel, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRainRoundTrip(t *testing.T) {
	for _, text := range []string{RainText, NoRainText} {
		normalized, ok := NormalizeRainText(text)
		require.True(t, ok)

		label, err := ParseLabel(normalized)
		require.NoError(t, err)

		assert.Equal(t, normalized, BoolText(label))
		assert.Equal(t, text, FreeText(label))
		assert.Equal(t, label.Bool(), text == RainText)
		assert.Equal(t, label, data.LabelFromBool(label.Bool()))
	}
	out, ok := NormalizeRainText("drizzle")
	assert.False(t, ok)
	assert.Equal(t, "drizzle", out)
}

func TestExtract(t *testing.T) {
	path := frameFrom(t, strings.Join([]string{
		"Rain,Pressure,Temperature,Extra",
		"True,990,20,x",
		"False,,21,y",
		"False,1020,22,",
		"NA,1000,23,z",
	}, "\n")+"\n")
	df, err := data.ReadFrame(path)
	require.NoError(t, err)

	ds, err := Extract(df, []string{"Temperature", "Pressure"}, "Rain")
	require.NoError(t, err)

	assert.Equal(t, []string{"Temperature", "Pressure"}, ds.Features)
	assert.Equal(t, [][]float64{{20, 990}, {22, 1020}}, ds.X)
	assert.Equal(t, []int{1, 0}, ds.Y)
	assert.Equal(t, 4, ds.Rows)
	assert.Equal(t, 2, ds.Dropped)
}

func TestExtractTrimsCells(t *testing.T) {
	df, err := data.ReadFrame(frameFrom(t, "Rain,Temperature,Pressure\n True , 2,1000 \nFalse,3,1020\n"))
	require.NoError(t, err)

	ds, err := Extract(df, []string{"Temperature", "Pressure"}, "Rain")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1000}, {3, 1020}}, ds.X)
	assert.Equal(t, []int{1, 0}, ds.Y)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"missing column", "Rain,Temperature\nTrue,1\n", "missing columns [Pressure]"},
		{"not a number", "Rain,Temperature,Pressure\nTrue,abc,1000\n", `line 2 column Temperature: "abc" is not a number`},
		{"infinite", "Rain,Temperature,Pressure\nTrue,1,Inf\n", "column Pressure"},
		{"bad label", "Rain,Temperature,Pressure\nmaybe,1,1000\n", "unrecognized label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := data.ReadFrame(frameFrom(t, tt.csv))
			require.NoError(t, err)
			_, err = Extract(df, []string{"Temperature", "Pressure"}, "Rain")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestColumn(t *testing.T) {
	assert.Equal(t, []float64{2, 4}, Column([][]float64{{1, 2}, {3, 4}}, 1))
}

func TestUpdatedPath(t *testing.T) {
	tests := map[string]string{
		"data/weather_forecast_data.csv":    "data/weather_forecast_data_updated.csv",
		"data/weather_forecast_data.csv.gz": "data/weather_forecast_data_updated.csv",
		"weather":                           "weather_updated.csv",
	}
	for in, want := range tests {
		assert.Equal(t, want, UpdatedPath(in), in)
	}
}

func TestNormalizeRainFile(t *testing.T) {
	in := frameFrom(t, "Temperature,Rain\n20,rain\n21,no rain\n22,\n23,hail\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	res, err := NormalizeRainFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, NormalizeResult{Rows: 4, Rewritten: 2, Untouched: 2}, res)

	df, err := data.ReadFrame(out)
	require.NoError(t, err)
	rain := df.Col("Rain")
	assert.Equal(t, "True", rain.Elem(0).String())
	assert.Equal(t, "False", rain.Elem(1).String())
	assert.True(t, rain.Elem(2).IsNA())
	assert.Equal(t, "hail", rain.Elem(3).String())
	assert.Equal(t, "20", df.Col("Temperature").Elem(0).String())

	for i, want := range []data.Label{data.Rain, data.NoRain} {
		got, err := ParseLabel(rain.Elem(i).String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNormalizeRainFileMissingColumn(t *testing.T) {
	in := frameFrom(t, "Temperature\n20\n")
	_, err := NormalizeRainFile(in, filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no Rain column")
}
