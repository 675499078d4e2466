package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// Config holds all configuration for the indexer application
type Config struct {
	// Application settings
	Verbose             bool
	ProcessorName       string
	CheckpointTableName string
	SyncInterval        time.Duration

	// HTTP server settings
	ListenHost string
	ListenPort int

	// Metrics settings
	Environment string

	// Upstream and datastore settings (environment-sourced)
	Aptos    aptos.Config
	Postgres postgres.Config
}

// ListenAddr returns the formatted trigger server address
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.ListenPort)
}

// buildConfig builds a Config from CLI context flags plus the environment
func buildConfig(c *cli.Context) *Config {
	return &Config{
		Verbose:             c.Bool("verbose"),
		ProcessorName:       c.String("processor-name"),
		CheckpointTableName: c.String("checkpoint-table-name"),
		SyncInterval:        c.Duration("sync-interval"),
		ListenHost:          c.String("listen-host"),
		ListenPort:          c.Int("listen-port"),
		Environment:         c.String("environment"),
		Aptos:               aptos.Load(),
		Postgres:            postgres.Load(),
	}
}
