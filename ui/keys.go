package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	NextControl key.Binding
	PrevControl key.Binding
	Left        key.Binding
	Right       key.Binding
	NextSite    key.Binding
	PrevSite    key.Binding
	AllSites    key.Binding
	Reset       key.Binding
	Search      key.Binding
	Accept      key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextControl: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		PrevControl: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev control")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		NextSite:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next site")),
		PrevSite:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev site")),
		AllSites:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all sites")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset range")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter sites")),
		Accept:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select match")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel filter")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextControl, k.Left, k.Right, k.NextSite, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextControl, k.PrevControl, k.Left, k.Right},
		{k.NextSite, k.PrevSite, k.AllSites, k.Reset},
		{k.Search, k.Accept, k.Cancel},
		{k.Help, k.Quit},
	}
}
