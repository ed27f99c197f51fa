package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strictlymomo/trainspotters-friend/internal/formatter"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tracklist"
	"github.com/strictlymomo/trainspotters-friend/internal/ui"
	"github.com/urfave/cli/v3"
)

// View launches the interactive result browser with preview playback.
func (r *Runner) View(ctx context.Context, cmd *cli.Command) error {
	csvPath := cmd.String("file")
	var runDir string
	if csvPath == "" {
		runDir = cmd.String("dir")
		if runDir == "" {
			latest, err := latestRunDir(r.config.Data.Dir)
			if err != nil {
				return err
			}
			runDir = latest
		}
		csvPath = filepath.Join(runDir, formatter.ResultsFileName)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open results: %w", err)
	}
	defer f.Close()

	rows, err := formatter.ReadResultsCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: no rows in %s", shared.ErrNoTracks, csvPath)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/trainspotter-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// The run directory keeps a copy of the input tracklist; a bare --file
	// CSV has none to show.
	var tracks []models.Track
	if runDir != "" {
		if data, err := os.ReadFile(filepath.Join(runDir, formatter.TracklistFileName)); err == nil {
			tracks = tracklist.Parse(string(data), fileLogger)
		}
	}

	model := ui.NewModel(rows, tracks, r.previewConfig(), fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// latestRunDir finds the most recent run directory under dataDir. Run
// directory names are sortable timestamps.
func latestRunDir(dataDir string) (string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("%w: no runs under %s", shared.ErrNoTracks, dataDir)
	}

	sort.Strings(dirs)
	return filepath.Join(dataDir, dirs[len(dirs)-1]), nil
}

func viewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Browse search results with preview playback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Results CSV to open",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Run directory to open (default: most recent)",
			},
		},
		Action: r.View,
	}
}
