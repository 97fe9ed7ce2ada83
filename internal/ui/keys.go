package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextSection   key.Binding
	Collapse      key.Binding
	Reload        key.Binding
	Draft         key.Binding
	New           key.Binding
	Approval      key.Binding
	AwaitingMe    key.Binding
	ReviewedNotOK key.Binding
	ClearFilters  key.Binding
	SavePreset    key.Binding
	DeletePreset  key.Binding
	Theme         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextSection:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next repo")),
		Collapse:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "collapse repo")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Draft:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draft filter")),
		New:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new filter")),
		Approval:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approval filter")),
		AwaitingMe:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "awaiting me")),
		ReviewedNotOK: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "reviewed, not approved")),
		ClearFilters:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		SavePreset:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save preset")),
		DeletePreset:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete preset")),
		Theme:         key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
