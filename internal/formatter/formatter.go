// package formatter reads and writes the run artifacts: the results CSV,
// the stats summary, and timestamped run directories under the data dir.
package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
)

// ResultsFileName is the CSV written into each run directory.
const ResultsFileName = "music_search_results.csv"

// StatsFileName is the summary written alongside the CSV.
const StatsFileName = "stats.txt"

// TracklistFileName is the copy of the input tracklist kept with the run.
const TracklistFileName = "tracklist.txt"

// csvHeader is the results column set. Column names are part of the format:
// the viewer and the HTTP API both key on them.
var csvHeader = []string{
	"timestamp",
	"original_artist",
	"original_title",
	"remix_info",
	"platform",
	"found_artist",
	"found_title",
	"url",
	"price",
}

// WriteResultsCSV writes rows to w with the standard header.
func WriteResultsCSV(w io.Writer, rows []models.MatchRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Timestamp,
			row.OriginalArtist,
			row.OriginalTitle,
			row.RemixInfo,
			row.Store,
			row.FoundArtist,
			row.FoundTitle,
			row.URL,
			row.Price,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// ReadResultsCSV parses a results CSV produced by [WriteResultsCSV]. The
// header row is validated loosely: only column count matters, so files with
// reordered extras are rejected rather than misread.
func ReadResultsCSV(r io.Reader) ([]models.MatchRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty results file")
	}

	var rows []models.MatchRow
	for i, record := range records {
		if i == 0 && record[0] == csvHeader[0] {
			continue
		}
		rows = append(rows, models.MatchRow{
			Timestamp:      record[0],
			OriginalArtist: record[1],
			OriginalTitle:  record[2],
			RemixInfo:      record[3],
			Store:          record[4],
			FoundArtist:    record[5],
			FoundTitle:     record[6],
			URL:            record[7],
			Price:          record[8],
		})
	}
	return rows, nil
}

// WriteStats writes the human-readable sweep summary.
func WriteStats(w io.Writer, stats tasks.SearchStats) error {
	var found float64
	if stats.TotalTracks > 0 {
		found = float64(stats.FoundTracks) / float64(stats.TotalTracks) * 100
	}

	fmt.Fprintf(w, "Search Results Summary\n")
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total tracks searched: %d\n", stats.TotalTracks)
	fmt.Fprintf(w, "Tracks with at least one result: %d (%.1f%%)\n\n", stats.FoundTracks, found)

	fmt.Fprintf(w, "Success rate by platform:\n")
	rates := stats.Rates()
	for _, store := range stats.SortedRates() {
		fmt.Fprintf(w, "- %s: %.1f%%\n", store, rates[store])
	}
	return nil
}

// RunDir creates and returns a fresh timestamped directory under dataDir.
func RunDir(dataDir string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(dataDir, stamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// SaveRun writes all artifacts of a sweep into a new run directory and
// returns its path.
func SaveRun(dataDir, tracklistText string, outcome *tasks.SearchOutcome) (string, error) {
	dir, err := RunDir(dataDir)
	if err != nil {
		return "", err
	}

	if tracklistText != "" {
		if err := os.WriteFile(filepath.Join(dir, TracklistFileName), []byte(tracklistText), 0644); err != nil {
			return "", fmt.Errorf("failed to save tracklist: %w", err)
		}
	}

	csvFile, err := os.Create(filepath.Join(dir, ResultsFileName))
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer csvFile.Close()
	if err := WriteResultsCSV(csvFile, outcome.Rows); err != nil {
		return "", err
	}

	statsFile, err := os.Create(filepath.Join(dir, StatsFileName))
	if err != nil {
		return "", fmt.Errorf("failed to create stats file: %w", err)
	}
	defer statsFile.Close()
	if err := WriteStats(statsFile, outcome.Stats); err != nil {
		return "", err
	}

	return dir, nil
}
