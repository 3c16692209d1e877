package cmd

import (
	"fmt"

	"github.com/agentic-research/querytree/query"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fieldsCmd)
}

var fieldsCmd = &cobra.Command{
	Use:   "fields [field]",
	Short: "List constrained fields, or the queries constraining one field",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		index := tree.BuildIndex()

		if len(args) == 0 {
			for _, field := range index.Fields() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", field, index.Count(field))
			}
			return nil
		}

		nodes := index.NodesUsing(args[0])
		if len(nodes) == 0 {
			return fmt.Errorf("no query constrains %q", args[0])
		}
		for _, node := range nodes {
			path := node.Path()
			if path == "" {
				path = query.RootLabel
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}
