package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tables
	Add     string `yaml:"add"`
	Edit    string `yaml:"edit"`
	Delete  string `yaml:"delete"`
	Refresh string `yaml:"refresh"`
	Filter  string `yaml:"filter"`

	// Forms
	SaveForm string `yaml:"save_form"`

	// Hub
	Connect    string `yaml:"connect"`
	Disconnect string `yaml:"disconnect"`
	Seed       string `yaml:"seed"`

	// Navigation
	NextTab string `yaml:"next_tab"`
	PrevTab string `yaml:"prev_tab"`
	Up      string `yaml:"up"`
	Down    string `yaml:"down"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Add:        "a",
		Edit:       "e",
		Delete:     "d",
		Refresh:    "r",
		Filter:     "f",
		SaveForm:   "ctrl+s",
		Connect:    "c",
		Disconnect: "x",
		Seed:       "s",
		NextTab:    "tab",
		PrevTab:    "shift+tab",
		Up:         "k",
		Down:       "j",
		ShowHelp:   "?",
		Quit:       "q",
	}
}

// applyDefaults fills in any empty key mappings with defaults
func (km *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&km.Add, d.Add)
	fill(&km.Edit, d.Edit)
	fill(&km.Delete, d.Delete)
	fill(&km.Refresh, d.Refresh)
	fill(&km.Filter, d.Filter)
	fill(&km.SaveForm, d.SaveForm)
	fill(&km.Connect, d.Connect)
	fill(&km.Disconnect, d.Disconnect)
	fill(&km.Seed, d.Seed)
	fill(&km.NextTab, d.NextTab)
	fill(&km.PrevTab, d.PrevTab)
	fill(&km.Up, d.Up)
	fill(&km.Down, d.Down)
	fill(&km.ShowHelp, d.ShowHelp)
	fill(&km.Quit, d.Quit)
}
