package cli

import (
	"github.com/spf13/cobra"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/shell"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Numbered text menu (tree, matrix, importance, predict)",
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	m := &shell.Menu{Actions: app, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	return m.Run()
}
