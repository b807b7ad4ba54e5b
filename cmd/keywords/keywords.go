// Package keywords contains the keyword table management commands.
package keywords

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifehub/spending/cmd/root"
)

// Cmd groups the keyword subcommands.
var Cmd = &cobra.Command{
	Use:   "keywords",
	Short: "Inspect and reload the merchant keyword table",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded keyword fragments and their categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		keywords, err := c.Store().Load(ctx)
		if err != nil {
			return err
		}
		for fragment, category := range keywords {
			fmt.Printf("%s\t%s\n", fragment, category)
		}
		return nil
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-seed the keyword table from the YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		count, err := c.ReloadKeywords(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Reloaded %d keywords\n", count)
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(reloadCmd)
}
