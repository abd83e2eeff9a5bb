package config

// Theme holds the handful of colors the terminal UI draws with.
type Theme struct {
	Accent   string `yaml:"accent"`
	Subtle   string `yaml:"subtle"`
	Normal   string `yaml:"normal"`
	Selected string `yaml:"selected"`
	Success  string `yaml:"success"`
	Error    string `yaml:"error"`
}

// DefaultTheme returns the default purple theme.
func DefaultTheme() Theme {
	return Theme{
		Accent:   "#874BFD",
		Subtle:   "#585858",
		Normal:   "#D0D0D0",
		Selected: "#D75FD7",
		Success:  "#5FD75F",
		Error:    "#FF0000",
	}
}

func (t *Theme) applyDefaults() {
	d := DefaultTheme()
	if t.Accent == "" {
		t.Accent = d.Accent
	}
	if t.Subtle == "" {
		t.Subtle = d.Subtle
	}
	if t.Normal == "" {
		t.Normal = d.Normal
	}
	if t.Selected == "" {
		t.Selected = d.Selected
	}
	if t.Success == "" {
		t.Success = d.Success
	}
	if t.Error == "" {
		t.Error = d.Error
	}
}
