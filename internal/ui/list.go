package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = trackItem{}
)

// resultItem wraps [models.MatchRow] to implement [list.Item].
type resultItem struct {
	row   models.MatchRow
	index int
}

func (i resultItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.row.FoundArtist, i.row.FoundTitle, i.row.Store)
}

func (i resultItem) Title() string {
	if i.row.Store == models.NoResultsStore {
		return fmt.Sprintf("%s - %s", i.row.OriginalArtist, i.row.OriginalTitle)
	}
	return fmt.Sprintf("%s - %s", i.row.FoundArtist, i.row.FoundTitle)
}

func (i resultItem) Description() string {
	if i.row.Store == models.NoResultsStore {
		return styles.warn.Render("no results found")
	}
	desc := i.row.Store
	if i.row.Price != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.Price)
	}
	return desc
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Artist, i.track.Title)
}

func (i trackItem) Title() string {
	title := i.track.Title
	if i.track.RemixInfo != "" {
		title = fmt.Sprintf("%s (%s)", title, i.track.RemixInfo)
	}
	return title
}

func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Timestamp != "" {
		desc = fmt.Sprintf("%s • %s", strings.TrimSpace(i.track.Timestamp), desc)
	}
	return desc
}
