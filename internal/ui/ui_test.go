package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/player"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

func sampleRows() []models.MatchRow {
	return []models.MatchRow{
		{
			OriginalArtist: "Jeff Mills",
			OriginalTitle:  "The Bells",
			Store:          "Bandcamp",
			FoundArtist:    "Jeff Mills",
			FoundTitle:     "The Bells",
			URL:            "https://bandcamp.com/track/the-bells",
			Price:          "$1.00",
		},
		{
			OriginalArtist: "Surgeon",
			OriginalTitle:  "Magneze",
			Store:          models.NoResultsStore,
		},
	}
}

func sampleTracks() []models.Track {
	return []models.Track{
		{Timestamp: "00:00", Artist: "Jeff Mills", Title: "The Bells"},
		{Timestamp: "05:30", Artist: "Surgeon", Title: "Magneze", RemixInfo: "Surgeon Remix"},
	}
}

func newTestModel(t *testing.T, tracks []models.Track) *Model {
	t.Helper()
	m := NewModel(sampleRows(), tracks, player.DefaultConfig(), shared.NewLogger(io.Discard))
	t.Cleanup(m.controller.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestTracklistView(t *testing.T) {
	t.Run("tab switches between results and tracklist", func(t *testing.T) {
		m := newTestModel(t, sampleTracks())

		if m.view != ResultListView {
			t.Fatalf("expected to start on the result list, got %v", m.view)
		}

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.view != TracklistView {
			t.Fatalf("expected tracklist view after tab, got %v", m.view)
		}
		if !strings.Contains(m.View(), "The Bells") {
			t.Error("expected the tracklist view to render track titles")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.view != ResultListView {
			t.Errorf("expected result list after second tab, got %v", m.view)
		}
	})

	t.Run("esc returns to the result list", func(t *testing.T) {
		m := newTestModel(t, sampleTracks())

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != ResultListView {
			t.Errorf("expected result list after esc, got %v", m.view)
		}
	})

	t.Run("tracklist items mirror the parsed tracks", func(t *testing.T) {
		tracks := sampleTracks()
		m := newTestModel(t, tracks)

		items := m.trackList.Items()
		if len(items) != len(tracks) {
			t.Fatalf("expected %d tracklist items, got %d", len(tracks), len(items))
		}

		remixed, ok := items[1].(trackItem)
		if !ok {
			t.Fatalf("expected a trackItem, got %T", items[1])
		}
		if remixed.Title() != "Magneze (Surgeon Remix)" {
			t.Errorf("unexpected item title: %q", remixed.Title())
		}
		if remixed.Description() != "05:30 • Surgeon" {
			t.Errorf("unexpected item description: %q", remixed.Description())
		}
	})

	t.Run("empty tracklist renders a notice", func(t *testing.T) {
		m := newTestModel(t, nil)

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if !strings.Contains(m.View(), "No tracklist saved with this run.") {
			t.Error("expected a notice for runs without a tracklist")
		}
	})
}
