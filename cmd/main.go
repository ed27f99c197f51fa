package main

import (
	"context"
	"errors"
	"os"

	"github.com/strictlymomo/trainspotters-friend/internal/repositories"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var cache tasks.ResultCacher
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			cache = repositories.NewResultCacheAdapter(repositories.NewResultRepository(db))
		} else {
			logger.Warn("result cache unavailable", "error", err)
			db.Close()
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Cache:  cache,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "trainspotter",
		Usage:    "Dig artist mixes and hunt their tracks across record stores",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the result cache database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
