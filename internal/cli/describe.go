package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/report"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the training split",
	Long:  `Prints per-feature statistics and the class balance of the training split.`,
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	w := cmd.OutOrStdout()
	split := app.Split
	fmt.Fprintf(w, "Rows: %d (dropped %d incomplete), train %d, test %d\n\n",
		split.Rows, split.Dropped, len(split.XTrain), len(split.XTest))
	if err := report.WriteDescribe(w, split.Schema, split.XTrain); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return report.WriteClassBalance(w, split.YTrain)
}
