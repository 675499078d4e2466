package main

import (
	"github.com/urfave/cli/v2"
)

// serveFlags returns all CLI flags for the serve command. Datastore and
// indexer API settings come from the environment (see pkg/postgres and
// pkg/aptos), not from flags.
func serveFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:    "listen-host",
			Usage:   "Host for the HTTP trigger server (empty for all interfaces)",
			EnvVars: []string{"LISTEN_HOST"},
			Value:   "",
		},
		&cli.IntFlag{
			Name:    "listen-port",
			Aliases: []string{"p"},
			Usage:   "Port for the HTTP trigger server",
			EnvVars: []string{"LISTEN_PORT"},
			Value:   8080,
		},
		&cli.DurationFlag{
			Name:    "sync-interval",
			Aliases: []string{"i"},
			Usage:   "The interval between automatic sync passes (0 disables the loop; passes then run only on /sync requests)",
			EnvVars: []string{"SYNC_INTERVAL"},
		},
		&cli.StringFlag{
			Name:    "environment",
			Aliases: []string{"E"},
			Usage:   "Deployment environment for metrics labels (e.g., 'production', 'staging')",
			EnvVars: []string{"ENVIRONMENT"},
			Value:   "",
		},
	)
}

// syncFlags returns all CLI flags for the one-shot sync command.
func syncFlags() []cli.Flag {
	return commonFlags()
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose logging",
			EnvVars: []string{"VERBOSE"},
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "processor-name",
			Aliases: []string{"n"},
			Usage:   "The checkpoint row key identifying this indexer instance",
			EnvVars: []string{"PROCESSOR_NAME"},
			Value:   "main_indexer",
		},
		&cli.StringFlag{
			Name:    "checkpoint-table-name",
			Aliases: []string{"T"},
			Usage:   "The name of the table to write the checkpoint to",
			EnvVars: []string{"CHECKPOINT_TABLE_NAME"},
			Value:   "indexer_status",
		},
	}
}
