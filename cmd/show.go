package cmd

import (
	"fmt"

	"github.com/agentic-research/querytree/document"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var (
	showVerbose bool
	showSelect  string
)

func init() {
	showCmd.Flags().BoolVar(&showVerbose, "verbose", false, "Emit full inherited definitions instead of the deduplicated form")
	showCmd.Flags().StringVar(&showSelect, "select", "", "JSONPath to apply to the serialized tree")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Serialize the query tree back to JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		doc := tree.Serialize(!showVerbose)

		if showSelect != "" {
			x, err := jp.ParseString(showSelect)
			if err != nil {
				return fmt.Errorf("invalid jsonpath '%s': %w", showSelect, err)
			}
			results := x.Get(document.Plain(doc))
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(results, 2))
			return nil
		}

		data, err := document.EncodeIndent(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
