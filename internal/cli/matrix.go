package cli

import (
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the held-out confusion matrix and save confusion_matrix.png",
	RunE:  runMatrix,
}

func runMatrix(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Matrix(cmd.OutOrStdout())
}
