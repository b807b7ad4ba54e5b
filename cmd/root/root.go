// Package root contains the root command and the shared command plumbing.
package root

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lifehub/spending/internal/config"
	"lifehub/spending/internal/container"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Email identifies the owner on whose behalf a command runs.
	Email string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "spending",
		Short: "Ingest card statements, categorize spending, and track monthly AI analyses.",
		Long: `spending imports bank card statement exports, normalizes and deduplicates
the rows, assigns each transaction a category, and maintains one AI-generated
spending analysis per month.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
	}
)

// Init registers the persistent flags. Called once from main before
// subcommands are attached.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Email, "email", "e", "", "owner email address")
}

// NewContainer loads the configuration and wires the application. Callers
// own the returned container and must Close it.
func NewContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	Log = config.ConfigureLogging(cfg)
	return container.New(ctx, cfg)
}

// RequireEmail returns the --email flag or an error when it is missing.
func RequireEmail() (string, error) {
	if Email == "" {
		return "", fmt.Errorf("--email is required")
	}
	return Email, nil
}
