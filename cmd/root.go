package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitmine/config"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitmine",
		Usage:   "Commit history mining and statistics for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ReportCmd(),
			BuildCmd(),
			AuthorsCmd(),
			MeanCmd(),
		},
		Flags: commonFlags(),
		// Bare invocation renders the full report.
		Action: reportAction,
	}
}

// Common flags shared across commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Path to the cache artifact",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Worker pool size for ingestion (0 = available parallelism)",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Delete the cache artifact and rebuild from the repository",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
			Value: "info",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (text, json)",
			Value: "text",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies CLI
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if repo := c.String("repo"); repo != "" {
		cfg.Repo.Path = repo
	}
	if cache := c.String("cache"); cache != "" {
		cfg.Repo.CachePath = cache
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Repo.Workers = workers
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
