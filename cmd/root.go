package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/querytree/query"
	"github.com/spf13/cobra"
)

var (
	defPath string
	dbPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&defPath, "file", "f", "", "Path to a JSON query definition")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the tree catalog (default ~/.agentic-research/querytree/trees.db)")
}

var rootCmd = &cobra.Command{
	Use:           "querytree",
	Short:         "Inheritance-based query trees for classifying records",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadTree builds the tree from the --file flag.
func loadTree() (*query.Tree, error) {
	if defPath == "" {
		return nil, fmt.Errorf("no definition given: set --file")
	}
	return query.FromFile(defPath)
}

// catalogPath resolves the catalog location: --db flag, or the default
// under the user's home directory.
func catalogPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".agentic-research", "querytree", "trees.db"), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
