package cli

import (
	"github.com/spf13/cobra"
)

var importanceCmd = &cobra.Command{
	Use:   "importance",
	Short: "Print feature importances and save feature_importance.png",
	RunE:  runImportance,
}

func runImportance(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Importance(cmd.OutOrStdout())
}
