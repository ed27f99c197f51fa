// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for browsing a search run:
//  1. [ResultListView] : Browse store matches with live preview playback
//  2. [DetailView] : Inspect a single match (store, price, URL)
//  3. [TracklistView] : Browse the run's parsed input tracklist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Cursor movement is translated into pointer enter/leave events on an in-memory
// [host.Collection], so the playback controller's hover-delay semantics decide
// when a preview actually starts. A periodic tick advances the simulated audio
// element and redraws the transport footer.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// transport keys (h/l or arrows to seek, n to skip, b to buy) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
