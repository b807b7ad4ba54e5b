// Package analyze contains the monthly analysis commands.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lifehub/spending/cmd/root"
	"lifehub/spending/internal/models"
)

var (
	month string

	// Cmd runs a monthly analysis over the owner's transactions.
	Cmd = &cobra.Command{
		Use:   "analyze",
		Short: "Run the AI spending analysis for one month",
		RunE:  run,
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show all stored analyses for the owner",
		RunE:  runHistory,
	}
)

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", `month to analyze, e.g. "2026-01"`)
	_ = Cmd.MarkFlagRequired("month")
	Cmd.AddCommand(historyCmd)
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

	all, err := c.Transactions().ListTransactions(ctx, email)
	if err != nil {
		return err
	}

	result, err := c.Analyses().AnalyzeMonth(ctx, email, month, filterMonth(all, month))
	if err != nil {
		return err
	}

	return printJSON(result)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	responses, err := c.Analyses().ListAnalyses(ctx, email)
	if err != nil {
		return err
	}
	return printJSON(responses)
}

// filterMonth keeps the transactions dated in the given "YYYY-MM" month.
// Statement dates keep their source punctuation ("2024.02.14"), so the
// comparison normalizes separators before the prefix check.
func filterMonth(transactions []models.Transaction, month string) []models.Transaction {
	normalized := strings.ReplaceAll(month, ".", "-")
	var out []models.Transaction
	for _, t := range transactions {
		date := strings.ReplaceAll(strings.ReplaceAll(t.Date, ".", "-"), "/", "-")
		if strings.HasPrefix(date, normalized) {
			out = append(out, t)
		}
	}
	return out
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
