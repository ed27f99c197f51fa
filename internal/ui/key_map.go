package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	tab     key.Binding
	play    key.Binding
	rewind  key.Binding
	forward key.Binding
	skip    key.Binding
	buy     key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tracklist")),
		play:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop")),
		rewind:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "rewind")),
		forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "forward")),
		skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		buy:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back, k.tab},
		{k.play, k.rewind, k.forward, k.skip, k.buy},
		{k.quit},
	}
}
