package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var matchLabel string

func init() {
	matchCmd.Flags().StringVarP(&matchLabel, "label", "l", "", "Dotted path of the query to match against (default root)")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match [record]",
	Short: "Classify a JSON record against a query",
	Long: `Classify a flat JSON record against the query at --label.
The record is given inline, or as @path to read it from a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		raw := []byte(args[0])
		if strings.HasPrefix(args[0], "@") {
			raw, err = os.ReadFile(args[0][1:])
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
		}
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		ok, err := tree.Match(matchLabel, record)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	},
}
