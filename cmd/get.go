package cmd

import (
	"fmt"

	"github.com/agentic-research/querytree/document"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get [path]",
	Short: "Print the effective definition at an exact dotted path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		node, err := tree.Get(args[0])
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("no query at %q", args[0])
		}
		data, err := document.EncodeIndent(node.Definition())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
