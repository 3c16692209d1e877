package cmd

import (
	"fmt"

	"github.com/agentic-research/querytree/document"
	"github.com/agentic-research/querytree/query"
	"github.com/spf13/cobra"
)

var (
	searchStrategy string
	searchBegin    string
)

func init() {
	searchCmd.Flags().StringVar(&searchStrategy, "strategy", string(query.DepthFirst), "Traversal strategy: depth or breadth")
	searchCmd.Flags().StringVar(&searchBegin, "begin", "", "Dotted path to start the search from")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [label]",
	Short: "Find the first query with a label and print its definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		node, err := tree.Search(args[0], nil, query.Strategy(searchStrategy), searchBegin)
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("no query labeled %q", args[0])
		}
		path := node.Path()
		if path == "" {
			path = query.RootLabel
		}
		data, err := document.EncodeIndent(node.Definition())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", path, string(data))
		return nil
	},
}
