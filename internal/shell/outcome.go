// Package shell is the interactive front end: a numbered text menu and a
// terminal form. Both only collect input and display results; all work is
// done by the Actions they are given.
package shell

import (
	"io"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// InvalidInput is shown when a prediction form holds a non-numeric value.
const InvalidInput = "Please enter valid numeric values."

const (
	rainIcon = "🌧"
	sunIcon  = "☀"
)

// Outcome is the user-facing wording of a prediction.
func Outcome(l data.Label) string {
	if l == data.Rain {
		return rainIcon + "  High probability of rain."
	}
	return sunIcon + "  Low probability of rain."
}

// FieldLabels are the prompts shown for each feature.
var FieldLabels = map[string]string{
	data.ColTemperature: "Temperature (°C)",
	data.ColHumidity:    "Humidity (%)",
	data.ColWindSpeed:   "Wind Speed (km/h)",
	data.ColCloudCover:  "Cloud Cover (%)",
	data.ColPressure:    "Atmospheric Pressure (hPa)",
}

func fieldLabel(name string) string {
	if l, ok := FieldLabels[name]; ok {
		return l
	}
	return name
}

// Predictor classifies one sample against a trained model.
type Predictor interface {
	Schema() pipeline.Schema
	Predict(s pipeline.Sample) (data.Label, error)
}

// Actions are the operations the menu dispatches to.
type Actions interface {
	Predictor
	Tree(w io.Writer) error
	Matrix(w io.Writer) error
	Importance(w io.Writer) error
}

// FormActions are the operations the form dispatches to. The Save
// methods return the path of the written image.
type FormActions interface {
	Predictor
	SaveTreePNG() (string, error)
	SaveMatrixPNG() (string, error)
}
