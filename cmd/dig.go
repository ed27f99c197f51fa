package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strictlymomo/trainspotters-friend/internal/formatter"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	"github.com/strictlymomo/trainspotters-friend/internal/tracklist"
	"github.com/urfave/cli/v3"
)

// Dig scrapes an artist's mix archive and collects tracklists.
func (r *Runner) Dig(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.StringArg("artist")
	if artist == "" {
		return fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	r.logger.Info("starting dig", "artist", artist)
	r.writePlain("Digging mixes for %s...\n\n", artist)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchListing:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchTracklists:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.digEngine.Run(ctx, progressCh, artist)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader(fmt.Sprintf("Found %d mixes, %d with tracklists", result.TotalMixes, len(result.Mixes)))

	outPath := cmd.String("output")
	if outPath == "" {
		runDir, err := formatter.RunDir(r.config.Data.Dir)
		if err != nil {
			return fmt.Errorf("failed to create run directory: %w", err)
		}
		outPath = filepath.Join(runDir, formatter.TracklistFileName)
	}

	if err := os.WriteFile(outPath, []byte(result.Combined), 0644); err != nil {
		return fmt.Errorf("failed to write tracklist: %w", err)
	}
	r.writePlain("Tracklists saved to: %s\n", outPath)

	if !cmd.Bool("search") {
		return nil
	}

	tracks := tracklist.Parse(result.Combined, r.logger)
	if len(tracks) == 0 {
		return shared.ErrNoTracks
	}
	r.writePlain("\nParsed %d tracks, sweeping stores...\n\n", len(tracks))
	return r.runSearch(ctx, result.Combined, tracks)
}

func digCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dig",
		Usage: "Scrape an artist's mix archive from MixesDB",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "artist",
				UsageText: "Artist name or MixesDB category",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path for the combined tracklist file (default: a new run directory)",
			},
			&cli.BoolFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Sweep the music stores for the collected tracks",
			},
		},
		Action: r.Dig,
	}
}
