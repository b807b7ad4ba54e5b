// Package transactions contains the transaction listing and mutation
// commands.
package transactions

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"lifehub/spending/cmd/root"
)

// Cmd groups the transaction subcommands.
var Cmd = &cobra.Command{
	Use:   "transactions",
	Short: "List, edit, delete and export transactions",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the owner's transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		email, err := root.RequireEmail()
		if err != nil {
			return err
		}
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		transactions, err := c.Transactions().ListTransactions(ctx, email)
		if err != nil {
			return err
		}
		for _, t := range transactions {
			fmt.Printf("%s\t%s\t%s\t%d\t%s\t%s\n",
				t.ID, t.Date, t.Merchant, t.Amount, t.Category, t.PaymentMethod)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the owner's transactions as CSV to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		email, err := root.RequireEmail()
		if err != nil {
			return err
		}
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return c.Transactions().ExportCSV(ctx, email, os.Stdout)
	},
}

var setAmountCmd = &cobra.Command{
	Use:   "set-amount <id> <amount>",
	Short: "Change the amount of a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return c.Transactions().UpdateAmount(ctx, args[0], amount)
	},
}

var setCategoryCmd = &cobra.Command{
	Use:   "set-category <id> <category>",
	Short: "Change the category of a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		updated, err := c.Transactions().UpdateCategory(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", updated.ID, updated.Merchant, updated.Category)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a transaction (it stays in the store)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return c.Transactions().DeleteTransaction(ctx, args[0])
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Permanently remove all of the owner's transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		email, err := root.RequireEmail()
		if err != nil {
			return err
		}
		c, err := root.NewContainer(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return c.Transactions().ClearTransactions(ctx, email)
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(setAmountCmd)
	Cmd.AddCommand(setCategoryCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(clearCmd)
}
