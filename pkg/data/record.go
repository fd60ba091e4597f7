package data

// Label is the binary rain outcome.
type Label int

const (
	NoRain Label = 0
	Rain   Label = 1
)

// LabelFromBool maps true to Rain and false to NoRain.
func LabelFromBool(b bool) Label {
	if b {
		return Rain
	}
	return NoRain
}

// Bool reports whether l is Rain.
func (l Label) Bool() bool { return l == Rain }

func (l Label) String() string {
	if l == Rain {
		return "Rain"
	}
	return "No Rain"
}

// ClassNames are the display names of the two labels, indexed by label value.
var ClassNames = []string{NoRain.String(), Rain.String()}

// Record is one weather observation.
type Record struct {
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	CloudCover  float64
	Pressure    float64
	Rain        Label
}

// Column names used by the weather dataset.
const (
	ColTemperature = "Temperature"
	ColHumidity    = "Humidity"
	ColWindSpeed   = "Wind_Speed"
	ColCloudCover  = "Cloud_Cover"
	ColPressure    = "Pressure"
	ColRain        = "Rain"
)

// FeatureColumns lists the feature columns in training order.
var FeatureColumns = []string{ColTemperature, ColHumidity, ColWindSpeed, ColCloudCover, ColPressure}

// Features returns the record's feature values in FeatureColumns order.
func (r Record) Features() []float64 {
	return []float64{r.Temperature, r.Humidity, r.WindSpeed, r.CloudCover, r.Pressure}
}
