package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/shell"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict rain for one set of readings",
	Long: `Predict rain for one set of weather readings.

Examples:
  rainfall predict --temperature 21.5 --humidity 88 --wind-speed 4 --cloud-cover 92 --pressure 995`,
	RunE: runPredict,
}

// Flags, kept as text so they go through the same validation as typed input.
var predictValues = map[string]*string{}

var predictFlags = []struct {
	name    string
	feature string
}{
	{"temperature", data.ColTemperature},
	{"humidity", data.ColHumidity},
	{"wind-speed", data.ColWindSpeed},
	{"cloud-cover", data.ColCloudCover},
	{"pressure", data.ColPressure},
}

func init() {
	for _, f := range predictFlags {
		v := new(string)
		predictValues[f.feature] = v
		predictCmd.Flags().StringVar(v, f.name, "", shell.FieldLabels[f.feature])
		_ = predictCmd.MarkFlagRequired(f.name)
	}
}

func runPredict(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	fields := make(map[string]string, len(predictValues))
	for feature, v := range predictValues {
		fields[feature] = *v
	}
	sample, err := pipeline.ParseSample(app.Schema(), fields)
	if err != nil {
		return fmt.Errorf("%s %w", shell.InvalidInput, err)
	}
	label, err := app.Predict(sample)
	if err != nil {
		return err
	}
	p, err := app.Model.Probability(sample)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Prediction: %s\n", shell.Outcome(label))
	fmt.Fprintf(w, "Rain share in leaf: %.2f\n", p)
	if out := app.Model.OutOfRange(sample); len(out) > 0 {
		fmt.Fprintf(w, "Note: outside the training range: %s\n", strings.Join(out, ", "))
	}
	return nil
}
