package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Local development keeps credentials in a .env file; deployed
	// environments inject them directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "indexer",
		Usage: "Index charity contract events from the Aptos indexer API into Postgres",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP trigger server, optionally with a periodic sync loop",
				Flags:  serveFlags(),
				Action: serve,
			},
			{
				Name:   "sync",
				Usage:  "Run a single sync pass and exit",
				Flags:  syncFlags(),
				Action: syncOnce,
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
