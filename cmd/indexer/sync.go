package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/metrics"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/utils"
)

// syncOnce runs a single sync pass and prints the summary as JSON. Intended
// for cron-style schedulers and manual backfills.
func syncOnce(c *cli.Context) error {
	cfg := buildConfig(c)

	sugar, err := utils.NewSugaredLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer sugar.Desugar().Sync() //nolint:errcheck // best-effort flush; ignore sync errors

	sugar.Infow("config",
		"verbose", cfg.Verbose,
		"processorName", cfg.ProcessorName,
		"checkpointTableName", cfg.CheckpointTableName,
		"indexerURL", cfg.Aptos.IndexerURL,
		"contractAddress", cfg.Aptos.ContractAddress,
		"postgresHost", cfg.Postgres.Host,
		"postgresDatabase", cfg.Postgres.Database,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics are registered for symmetry with serve but not exposed; a
	// one-shot process has nothing to scrape.
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	orch, pgClient, err := buildOrchestrator(cfg, m, sugar)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	summary, err := orch.RunPass(ctx)
	if err != nil {
		return fmt.Errorf("sync pass failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
