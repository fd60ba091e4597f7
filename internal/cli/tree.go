package cli

import (
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the decision tree and save decision_tree.png",
	RunE:  runTree,
}

var treeDepth int

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, "render at most this many levels (0 = all); overrides output.tree_depth")
}

func runTree(cmd *cobra.Command, args []string) error {
	app, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if cmd.Flags().Changed("depth") {
		app.Config.TreeDepth = treeDepth
		if err := app.Config.Validate(); err != nil {
			return err
		}
	}
	return app.Tree(cmd.OutOrStdout())
}
