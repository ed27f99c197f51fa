package formatter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	testutil "github.com/strictlymomo/trainspotters-friend/internal/testing"
)

var sampleRows = []models.MatchRow{
	{
		Timestamp:      "00:00",
		OriginalArtist: "Artist One",
		OriginalTitle:  "Track One",
		Store:          "Bandcamp",
		FoundArtist:    "Artist One",
		FoundTitle:     "Track One",
		URL:            "https://bandcamp.com/track/one",
		Price:          "$2.00",
	},
	{
		Timestamp:      "07:45",
		OriginalArtist: "Artist Two",
		OriginalTitle:  "Track Two",
		RemixInfo:      "Club Mix",
		Store:          models.NoResultsStore,
	},
}

func TestResultsCSV(t *testing.T) {
	t.Run("writes the header and one record per row", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteResultsCSV(&buf, sampleRows); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[0], "timestamp,original_artist") {
			t.Errorf("unexpected header: %q", lines[0])
		}
		if !strings.Contains(lines[2], models.NoResultsStore) {
			t.Errorf("expected miss placeholder in %q", lines[2])
		}
	})

	t.Run("round trips through the reader", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteResultsCSV(&buf, sampleRows); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows, err := ReadResultsCSV(&buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != len(sampleRows) {
			t.Fatalf("expected %d rows, got %d", len(sampleRows), len(rows))
		}
		if rows[0] != sampleRows[0] {
			t.Errorf("row mismatch: got %+v want %+v", rows[0], sampleRows[0])
		}
	})

	t.Run("rejects a malformed file", func(t *testing.T) {
		if _, err := ReadResultsCSV(strings.NewReader("a,b,c\n1,2,3\n")); err == nil {
			t.Error("expected error for wrong column count")
		}
	})

	t.Run("write failure surfaces an error", func(t *testing.T) {
		if err := WriteResultsCSV(&testutil.FWriter{}, sampleRows); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestWriteStats(t *testing.T) {
	stats := tasks.SearchStats{
		TotalTracks: 4,
		FoundTracks: 3,
		StoreHits:   map[string]int{"Bandcamp": 3, "Hardwax": 1},
	}

	var buf bytes.Buffer
	if err := WriteStats(&buf, stats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Total tracks searched: 4") {
		t.Errorf("missing totals in %q", out)
	}
	if !strings.Contains(out, "Tracks with at least one result: 3 (75.0%)") {
		t.Errorf("missing found rate in %q", out)
	}
	if !strings.Contains(out, "- Bandcamp: 75.0%") {
		t.Errorf("missing bandcamp rate in %q", out)
	}
	if !strings.Contains(out, "- Hardwax: 25.0%") {
		t.Errorf("missing hardwax rate in %q", out)
	}
}

func TestSaveRun(t *testing.T) {
	dataDir := t.TempDir()
	outcome := &tasks.SearchOutcome{
		Rows: sampleRows,
		Stats: tasks.SearchStats{
			TotalTracks: 2,
			FoundTracks: 1,
			StoreHits:   map[string]int{"Bandcamp": 1},
		},
	}

	dir, err := SaveRun(dataDir, "00:00 Artist One - Track One\n", outcome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertFileExists(t, filepath.Join(dir, ResultsFileName))
	testutil.AssertFileExists(t, filepath.Join(dir, StatsFileName))
	testutil.AssertFileExists(t, filepath.Join(dir, TracklistFileName))

	if content := testutil.MustReadFile(t, filepath.Join(dir, ResultsFileName)); !strings.Contains(content, "Bandcamp") {
		t.Error("results CSV missing store column")
	}
}
