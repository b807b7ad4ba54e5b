// Package container wires the application dependencies explicitly: config →
// logger → stores → keyword table → resolver → engine → services.
package container

import (
	"context"
	"fmt"
	"time"

	"lifehub/spending/internal/analyzer"
	"lifehub/spending/internal/categorizer"
	"lifehub/spending/internal/config"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/service"
	"lifehub/spending/internal/store"
)

// Container holds the wired application. Fields are private; commands reach
// the services through the accessors.
type Container struct {
	cfg    *config.Config
	logger logging.Logger
	db     *store.SQLiteStore

	keywords     *categorizer.KeywordTable
	transactions *service.TransactionService
	analyses     *service.AnalysisService
}

// New builds the full dependency graph. The keyword table is loaded once
// here; the process reads the same snapshot until ReloadKeywords builds a
// fresh one.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	db, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Container{cfg: cfg, logger: logger, db: db}

	if err := c.seedKeywordsIfEmpty(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := c.buildServices(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// seedKeywordsIfEmpty copies the YAML keyword seed into the database the
// first time the process runs against an empty keywords table.
func (c *Container) seedKeywordsIfEmpty(ctx context.Context) error {
	existing, err := c.db.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading keywords: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seed, err := store.NewYAMLKeywordStore(c.cfg.Keywords.File).Load(ctx)
	if err != nil {
		return fmt.Errorf("loading keyword seed: %w", err)
	}
	if len(seed) == 0 {
		return nil
	}

	if err := c.db.ReplaceKeywords(ctx, seed); err != nil {
		return fmt.Errorf("seeding keywords: %w", err)
	}
	c.logger.Info("Seeded keyword table",
		logging.Field{Key: "file", Value: c.cfg.Keywords.File},
		logging.Field{Key: "count", Value: len(seed)})
	return nil
}

func (c *Container) buildServices(ctx context.Context) error {
	keywords, err := c.db.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading keywords: %w", err)
	}
	c.keywords = categorizer.NewKeywordTable(keywords)
	resolver := categorizer.NewResolver(c.keywords)

	engine := analyzer.NewGeminiEngine(
		c.cfg.AI.APIKey,
		c.cfg.AI.Model,
		time.Duration(c.cfg.AI.TimeoutSeconds)*time.Second,
		c.logger,
	)

	c.transactions = service.NewTransactionService(c.db, c.db, resolver, c.logger)
	c.analyses = service.NewAnalysisService(c.db, c.db, engine, c.logger)
	return nil
}

// ReloadKeywords re-seeds the keyword table from the YAML file and swaps in
// a freshly built snapshot. The old snapshot is never mutated; readers that
// already hold it keep a consistent view.
func (c *Container) ReloadKeywords(ctx context.Context) (int, error) {
	seed, err := store.NewYAMLKeywordStore(c.cfg.Keywords.File).Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading keyword seed: %w", err)
	}
	if err := c.db.ReplaceKeywords(ctx, seed); err != nil {
		return 0, fmt.Errorf("replacing keywords: %w", err)
	}
	if err := c.buildServices(ctx); err != nil {
		return 0, err
	}
	return c.keywords.Len(), nil
}

// Close releases the database handle.
func (c *Container) Close() error {
	return c.db.Close()
}

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config { return c.cfg }

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Store returns the sqlite store, for commands that manage users directly.
func (c *Container) Store() *store.SQLiteStore { return c.db }

// Transactions returns the transaction service.
func (c *Container) Transactions() *service.TransactionService { return c.transactions }

// Analyses returns the analysis service.
func (c *Container) Analyses() *service.AnalysisService { return c.analyses }
