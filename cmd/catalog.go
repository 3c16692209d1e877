package cmd

import (
	"fmt"

	"github.com/agentic-research/querytree/document"
	"github.com/agentic-research/querytree/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(saveCmd, loadCmd, listCmd, rmCmd)
}

// openCatalog opens the SQLite catalog at the configured path.
func openCatalog() (*store.Store, error) {
	path, err := catalogPath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the query tree to the catalog under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = catalog.Close() }()

		if err := catalog.Save(args[0], tree); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", args[0])
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load [name]",
	Short: "Print a tree stored in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = catalog.Close() }()

		tree, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		data, err := document.EncodeIndent(tree.Serialize(true))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the trees stored in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = catalog.Close() }()

		names, err := catalog.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a tree from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = catalog.Close() }()

		if err := catalog.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
		return nil
	},
}
