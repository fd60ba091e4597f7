package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/dataprep"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite the Rain column from rain/no rain to True/False",
	Long: `Reads the raw weather CSV and rewrites its Rain column so that "rain"
becomes "True" and "no rain" becomes "False". Other values are left as they are.

The output defaults to the input name with "_updated" before the extension:
  data/weather_forecast_data.csv -> data/weather_forecast_data_updated.csv`,
	RunE: runNormalize,
}

// Flags
var (
	normalizeInput  string
	normalizeOutput string
)

func init() {
	normalizeCmd.Flags().StringVar(&normalizeInput, "input", "data/weather_forecast_data.csv", "raw dataset CSV")
	normalizeCmd.Flags().StringVar(&normalizeOutput, "output", "", "normalized CSV (default: <input>_updated)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	output := normalizeOutput
	if output == "" {
		output = dataprep.UpdatedPath(normalizeInput)
	}
	res, err := dataprep.NormalizeRainFile(normalizeInput, output)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", normalizeInput, err)
	}
	logger.Info("rain column normalized",
		zap.String("input", normalizeInput),
		zap.String("output", output),
		zap.Int("rows", res.Rows),
		zap.Int("rewritten", res.Rewritten),
		zap.Int("untouched", res.Untouched),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Updated file saved to: %s\n", output)
	return nil
}
