package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/host"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/player"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultListView ViewState = iota
	DetailView
	TracklistView
)

// previewDuration is the simulated preview clip length in seconds.
const previewDuration = 120

// tickInterval drives the simulated audio element and the now-playing footer.
const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

// Model represents the TUI application state. Moving the cursor through the
// result list acts as pointer hover over the corresponding collection entry,
// so previews start only after the cursor rests on a row for the hover delay.
type Model struct {
	view       ViewState
	rows       []models.MatchRow
	resultList list.Model
	trackList  list.Model
	detail     *models.MatchRow
	collection *host.Collection
	audio      *host.SimAudio
	controller *player.Controller
	hovered    int
	status     string
	width      int
	height     int
	help       help.Model
	keys       keyMap
	logger     *log.Logger
}

// NewModel creates a TUI model over the given result rows and the run's
// parsed input tracklist. Rows whose store is [models.NoResultsStore] appear
// in the list but expose no preview or purchase affordances; tracks may be
// empty when the run directory carries no tracklist.
func NewModel(rows []models.MatchRow, tracks []models.Track, cfg player.Config, logger *log.Logger) *Model {
	m := &Model{
		view:    ResultListView,
		rows:    rows,
		hovered: -1,
		help:    help.New(),
		keys:    newKeyMap(),
		logger:  logger,
	}

	entries := make([]host.ItemData, len(rows))
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		miss := row.Store == models.NoResultsStore
		label := fmt.Sprintf("%s - %s", row.FoundArtist, row.FoundTitle)
		if miss {
			label = fmt.Sprintf("%s - %s", row.OriginalArtist, row.OriginalTitle)
		}
		entries[i] = host.ItemData{
			Label:  label,
			BuyURL: row.URL,
			NoPlay: miss,
			NoBuy:  miss || row.URL == "",
			OnBuy:  m.openStorePage,
		}
		items[i] = resultItem{row: row, index: i}
	}

	m.audio = host.NewSimAudio(previewDuration)
	m.collection = host.NewCollection(entries)
	m.collection.SetAudio(m.audio)
	m.controller = player.New(m.collection, cfg, shared.NewSystemClock(), logger)

	m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.resultList.Title = "Search Results"
	m.resultList.SetShowHelp(false)

	trackItems := make([]list.Item, len(tracks))
	for i, track := range tracks {
		trackItems[i] = trackItem{track: track}
	}
	m.trackList = list.New(trackItems, list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = "Tracklist"
	m.trackList.SetShowHelp(false)

	return m
}

// Init starts the audio tick.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultList.SetSize(msg.Width-4, msg.Height-8)
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tickMsg:
		m.advanceAudio()
		return m, tick()

	case tea.KeyMsg:
		switch m.view {
		case ResultListView:
			return m.handleResultListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case TracklistView:
			return m.handleTracklistKeys(msg)
		}
	}

	return m, nil
}

// advanceAudio simulates buffering and playback: the first tick after a
// preview starts marks the element seekable, later ticks move the position.
func (m *Model) advanceAudio() {
	if m.collection.PlayingCount() == 0 {
		return
	}
	if m.audio.ReadyState() < host.ReadyToSeek {
		m.audio.SetReadyState(host.ReadyToSeek)
		return
	}
	m.audio.Advance(tickInterval.Seconds())
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.resultList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.resultList, cmd = m.resultList.Update(msg)
		m.syncHover()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.controller.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			row := item.row
			m.detail = &row
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.tab):
		m.view = TracklistView
		return m, nil
	case key.Matches(msg, m.keys.play):
		if sel, ok := m.resultList.SelectedItem().(resultItem); ok {
			if item, found := m.collection.ItemAt(sel.index); found {
				m.controller.Toggle(item)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.rewind):
		m.controller.Press(player.KeyRewind)
		return m, nil
	case key.Matches(msg, m.keys.forward):
		m.controller.Press(player.KeyForward)
		return m, nil
	case key.Matches(msg, m.keys.skip):
		m.controller.Press(player.KeySkip)
		m.followNowPlaying()
		return m, nil
	case key.Matches(msg, m.keys.buy):
		m.controller.Press(player.KeyBuy)
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	m.syncHover()
	return m, cmd
}

func (m *Model) handleTracklistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.controller.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab), key.Matches(msg, m.keys.back):
		m.view = ResultListView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.controller.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.detail = nil
		m.view = ResultListView
	}
	return m, nil
}

// syncHover reports cursor movement to the playback controller as pointer
// enter/leave events on the hovered collection entry.
func (m *Model) syncHover() {
	idx := -1
	if item, ok := m.resultList.SelectedItem().(resultItem); ok {
		idx = item.index
	}
	if idx == m.hovered {
		return
	}

	if prev, ok := m.collection.ItemAt(m.hovered); ok {
		m.controller.PointerLeave(prev)
	}
	if next, ok := m.collection.ItemAt(idx); ok {
		m.controller.PointerEnter(next)
	}
	m.hovered = idx
}

// followNowPlaying moves the cursor to the entry a skip landed on.
func (m *Model) followNowPlaying() {
	playing, ok := m.controller.NowPlaying()
	if !ok {
		return
	}
	for i := range m.rows {
		item, found := m.collection.ItemAt(i)
		if found && host.Item(item) == playing {
			m.resultList.Select(i)
			m.hovered = i
			return
		}
	}
}

func (m *Model) openStorePage(url string) {
	if err := shared.OpenBrowser(url); err != nil {
		m.logger.Error("failed to open browser", "url", url, "error", err)
		m.status = styles.err.Render("could not open " + url)
		return
	}
	m.status = styles.ok.Render("opened " + url)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ResultListView:
		return m.renderResultList()
	case DetailView:
		return m.renderDetail()
	case TracklistView:
		return m.renderTrackList()
	default:
		return ""
	}
}

func (m *Model) renderTrackList() string {
	if len(m.trackList.Items()) == 0 {
		body := styles.warn.Render("No tracklist saved with this run.")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.tab, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.tab, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderResultList() string {
	footer := m.renderFooter()
	helpKeys := []key.Binding{m.keys.enter, m.keys.tab, m.keys.skip, m.keys.buy, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.resultList.View(), footer, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	row := m.detail

	title := styles.title.Render(fmt.Sprintf("%s - %s", row.OriginalArtist, row.OriginalTitle))
	var body string
	if row.Store == models.NoResultsStore {
		body = styles.warn.Render("No store results for this track.")
	} else {
		body = fmt.Sprintf(
			"Store: %s\nMatch: %s - %s\nPrice: %s\nURL: %s",
			row.Store, row.FoundArtist, row.FoundTitle, row.Price, row.URL,
		)
	}
	if row.RemixInfo != "" {
		body = fmt.Sprintf("Remix: %s\n%s", row.RemixInfo, body)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

// renderFooter shows the simulated transport bar while a preview is playing.
func (m *Model) renderFooter() string {
	playing, ok := m.collection.NowPlaying()
	if !ok {
		if m.status != "" {
			return m.status
		}
		return styles.help.Render("rest the cursor on a row to preview")
	}

	pos := m.audio.Position()
	dur := m.audio.Duration()
	bar := fmt.Sprintf("▶ %s  %s / %s", playing.Label(), formatSeconds(pos), formatSeconds(dur))
	if m.status != "" {
		return fmt.Sprintf("%s\n%s", styles.playing.Render(bar), m.status)
	}
	return styles.playing.Render(bar)
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
