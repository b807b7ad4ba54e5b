// Package users contains the owner management commands. In the full system
// owners arrive through the web layer's login flow; the CLI needs a way to
// register them directly.
package users

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifehub/spending/cmd/root"
)

// Cmd groups the user subcommands.
var Cmd = &cobra.Command{
	Use:   "users",
	Short: "Manage owners",
}

var addCmd = &cobra.Command{
	Use:   "add <email> [name]",
	Short: "Register an owner if they do not already exist",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		name := ""
		if len(args) > 1 {
			name = args[1]
		}

		user, err := c.Store().EnsureUser(ctx, args[0], name)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	Cmd.AddCommand(addCmd)
}
