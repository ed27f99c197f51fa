package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/strictlymomo/trainspotters-friend/internal/formatter"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	"github.com/strictlymomo/trainspotters-friend/internal/tracklist"
	"github.com/urfave/cli/v3"
)

// Search sweeps the music stores for every track in a tracklist file.
//
// Reads from stdin when no file is given.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")

	var text string
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read tracklist: %w", err)
		}
		text = string(data)
	}

	tracks := tracklist.Parse(text, r.logger)
	if len(tracks) == 0 {
		return shared.ErrNoTracks
	}

	r.writePlain("Parsed %d tracks, sweeping %d stores...\n\n", len(tracks), len(r.searchers))
	return r.runSearch(ctx, text, tracks)
}

// runSearch runs the store sweep and writes the run artifacts. Shared by the
// search command and dig --search.
func (r *Runner) runSearch(ctx context.Context, tracklistText string, tracks []models.Track) error {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("🔍 %s\n", update.Message)
		}
	}()

	outcome, err := r.searchEngine.Run(ctx, progressCh, tracks)
	close(progressCh)

	if err != nil {
		return err
	}

	runDir, err := formatter.SaveRun(r.config.Data.Dir, tracklistText, outcome)
	if err != nil {
		return fmt.Errorf("failed to save run artifacts: %w", err)
	}

	r.writePlain("\n")
	r.writePlainHeader("Search Complete!")
	r.writePlain("Tracks: %d\n", outcome.Stats.TotalTracks)
	r.writePlain("Found on at least one store: %d (%.1f%%)\n",
		outcome.Stats.FoundTracks,
		float64(outcome.Stats.FoundTracks)/float64(outcome.Stats.TotalTracks)*100)

	rates := outcome.Stats.Rates()
	for _, store := range outcome.Stats.SortedRates() {
		r.writePlain("  - %s: %.1f%%\n", store, rates[store])
	}

	r.writePlain("\nResults saved to: %s\n", runDir)
	r.writePlain("View them with: trainspotter view --dir %s\n", runDir)

	return nil
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search music stores for each track in a tracklist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Tracklist file to search (default: stdin)",
			},
		},
		Action: r.Search,
	}
}
