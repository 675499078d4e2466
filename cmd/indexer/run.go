package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hitakshiA/charity-rewards-indexer/internal/indexer"
	"github.com/hitakshiA/charity-rewards-indexer/internal/server"
	"github.com/hitakshiA/charity-rewards-indexer/internal/transform"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/checkpoint"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/metrics"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/scheduler"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/utils"
)

const shutdownTimeout = 15 * time.Second

func serve(c *cli.Context) error {
	// Build configuration from CLI flags and the environment
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
		"syncInterval", cfg.SyncInterval,
		"listenHost", cfg.ListenHost,
		"listenPort", cfg.ListenPort,
		"environment", cfg.Environment,
		"indexerURL", cfg.Aptos.IndexerURL,
		"contractAddress", cfg.Aptos.ContractAddress,
		"moduleName", cfg.Aptos.ModuleName,
		"pageSize", cfg.Aptos.PageSize,
		"postgresHost", cfg.Postgres.Host,
		"postgresDatabase", cfg.Postgres.Database,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Prometheus metrics with labels for multi-instance filtering
	registry := prometheus.NewRegistry()
	m, err := metrics.NewWithLabels(registry, metrics.Labels{
		ProcessorName: cfg.ProcessorName,
		Environment:   cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	orch, pgClient, err := buildOrchestrator(cfg, m, sugar)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	s := server.New(cfg.ListenAddr(), orch, registry, sugar)
	serverErrCh := s.Start()
	if cfg.ListenHost == "" {
		sugar.Infof("trigger server listening on http://0.0.0.0:%d/sync", cfg.ListenPort)
	} else {
		sugar.Infof("trigger server listening on http://%s/sync", cfg.ListenAddr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case err := <-serverErrCh:
			if err != nil {
				return fmt.Errorf("trigger server failed: %w", err)
			}
			return nil
		}
	})
	if cfg.SyncInterval > 0 {
		sugar.Infof("sync loop enabled, running a pass every %s", cfg.SyncInterval)
		g.Go(func() error {
			return scheduler.Start(gctx, cfg.SyncInterval, func(ctx context.Context) error {
				summary, err := orch.RunPass(ctx)
				if err != nil {
					return err
				}
				sugar.Infow("sync pass complete", "syncedToVersion", summary.SyncedToVersion)
				return nil
			}, sugar)
		})
	}

	err = g.Wait()

	// The root context is gone by the time we get here; use a fresh one so
	// in-flight passes can drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil {
		sugar.Warnw("trigger server shutdown failed", "error", shutdownErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	sugar.Info("indexer stopped")
	return nil
}

// buildOrchestrator wires the datastore repositories, transformers and the
// indexer API client into an orchestrator. The returned client owns the
// Postgres connection pool and must be closed by the caller.
func buildOrchestrator(cfg *Config, m *metrics.Metrics, sugar *zap.SugaredLogger) (*indexer.Orchestrator, postgres.Client, error) {
	pgClient, err := postgres.New(cfg.Postgres, sugar)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create postgres client: %w", err)
	}

	checkpointRepo, err := checkpoint.NewRepository(pgClient, cfg.CheckpointTableName)
	if err != nil {
		pgClient.Close()
		return nil, nil, fmt.Errorf("failed to create checkpoint repository: %w", err)
	}

	campaigns, err := charityrepo.NewCampaignsRepository(pgClient)
	if err != nil {
		pgClient.Close()
		return nil, nil, fmt.Errorf("failed to create campaigns repository: %w", err)
	}
	donations, err := charityrepo.NewDonationsRepository(pgClient)
	if err != nil {
		pgClient.Close()
		return nil, nil, fmt.Errorf("failed to create donations repository: %w", err)
	}
	fundsClaimed, err := charityrepo.NewFundsClaimedRepository(pgClient)
	if err != nil {
		pgClient.Close()
		return nil, nil, fmt.Errorf("failed to create funds claimed repository: %w", err)
	}

	reg := transform.NewDefaultRegistry(campaigns, donations, fundsClaimed, sugar)
	source := aptos.New(cfg.Aptos, sugar)

	orch := indexer.NewOrchestrator(source, checkpointRepo, reg, m, sugar, cfg.ProcessorName)
	return orch, pgClient, nil
}
