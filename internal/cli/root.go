package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rainfall",
	Short: "Decision-tree rainfall prediction from weather readings",
	Long: `rainfall trains a decision tree on a weather dataset (Temperature, Humidity,
Wind_Speed, Cloud_Cover, Pressure) and predicts whether it will rain.

Every command that needs a model loads the dataset, splits it 80/20 with a
fixed seed and trains the tree before running, so results are repeatable.`,
	SilenceUsage: true,
}

// Persistent flags
var (
	configPath string
	dataPath   string
	outDir     string
	logLevel   string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset CSV (optionally .gz); overrides data.path")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "directory for images; overrides output.dir")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error; overrides log.level")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(importanceCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(formCmd)
}
