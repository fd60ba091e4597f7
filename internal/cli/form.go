package cli

import (
	"github.com/spf13/cobra"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/shell"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Interactive prediction form",
	Long: `Opens a terminal form with one field per weather reading.

Keys: enter predicts, tab/shift+tab move between fields, ctrl+l clears the
form and the last result, ctrl+t saves the tree image, ctrl+k saves the
confusion matrix image, esc or ctrl+c quits.`,
	RunE: runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return shell.RunForm(app, cmd.InOrStdin(), cmd.OutOrStdout())
}
