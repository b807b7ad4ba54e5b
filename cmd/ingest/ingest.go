// Package ingest contains the statement import command.
package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifehub/spending/cmd/root"
	"lifehub/spending/internal/parser"
)

var (
	inputFile string
	format    string

	// Cmd imports a statement export for the owner.
	Cmd = &cobra.Command{
		Use:   "ingest",
		Short: "Import a bank statement export and categorize its transactions",
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "statement export file (CSV)")
	Cmd.Flags().StringVar(&format, "format", "", "statement format (default from config)")
	_ = Cmd.MarkFlagRequired("file")
}

func run(cmd *cobra.Command, args []string) error {
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

	if format == "" {
		format = c.Config().Statement.DefaultFormat
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening statement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	transactions, err := c.Transactions().ImportStatement(ctx, email, parser.Format(format), f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported statement; owner now has %d transactions\n", len(transactions))
	return nil
}
