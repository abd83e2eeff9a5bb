package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// keyMap holds the bindings built from the configured key mappings.
type keyMap struct {
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	Filter     key.Binding
	SaveForm   key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Seed       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Up         key.Binding
	Down       key.Binding
	ShowHelp   key.Binding
	Quit       key.Binding

	// fixed
	Confirm key.Binding
	Cancel  key.Binding
	Submit  key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	bind := func(k, help string, extra ...string) key.Binding {
		return key.NewBinding(
			key.WithKeys(append([]string{k}, extra...)...),
			key.WithHelp(k, help),
		)
	}
	return keyMap{
		Add:        bind(km.Add, "add"),
		Edit:       bind(km.Edit, "edit"),
		Delete:     bind(km.Delete, "delete"),
		Refresh:    bind(km.Refresh, "refresh"),
		Filter:     bind(km.Filter, "filter by type"),
		SaveForm:   bind(km.SaveForm, "save"),
		Connect:    bind(km.Connect, "connect"),
		Disconnect: bind(km.Disconnect, "disconnect"),
		Seed:       bind(km.Seed, "seed missing samples"),
		NextTab:    bind(km.NextTab, "next tab"),
		PrevTab:    bind(km.PrevTab, "previous tab"),
		Up:         bind(km.Up, "up", "up"),
		Down:       bind(km.Down, "down", "down"),
		ShowHelp:   bind(km.ShowHelp, "help"),
		Quit:       bind(km.Quit, "quit", "ctrl+c"),
		Confirm:    bind("y", "confirm"),
		Cancel:     bind("esc", "cancel"),
		Submit:     bind("enter", "next field / submit"),
	}
}
