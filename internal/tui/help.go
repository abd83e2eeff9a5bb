package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// helpMarkdown documents the current key bindings.
func (m Model) helpMarkdown() string {
	km := m.cfg.KeyMappings
	row := func(k, what string) string {
		return fmt.Sprintf("| `%s` | %s |\n", k, what)
	}

	var b strings.Builder
	b.WriteString("# coffeehub\n\n")
	b.WriteString("Manage the coffee house sample data across MySQL, Neo4j, MongoDB and Redis.\n\n")

	b.WriteString("## Everywhere\n\n| Key | Action |\n|---|---|\n")
	b.WriteString(row(km.NextTab, "next tab"))
	b.WriteString(row(km.PrevTab, "previous tab"))
	b.WriteString(row(km.ShowHelp, "this help"))
	b.WriteString(row(km.Quit, "quit"))

	b.WriteString("\n## Hub\n\n| Key | Action |\n|---|---|\n")
	b.WriteString(row(km.Connect, "connect, seeding any missing sample database"))
	b.WriteString(row(km.Disconnect, "disconnect"))
	b.WriteString(row(km.Seed, "seed missing sample databases"))
	b.WriteString(row(km.Refresh, "refresh sample status"))

	b.WriteString("\n## HR and Products\n\n| Key | Action |\n|---|---|\n")
	b.WriteString(row(km.Up+" / "+km.Down, "move selection"))
	b.WriteString(row(km.Add, "add a row"))
	b.WriteString(row(km.Edit, "edit the selected row"))
	b.WriteString(row(km.Delete, "delete the selected row (confirm with `y`)"))
	b.WriteString(row(km.Filter, "products: cycle the type filter"))
	b.WriteString(row(km.Refresh, "reload"))

	b.WriteString("\n## Member\n\n| Key | Action |\n|---|---|\n")
	b.WriteString(row(km.Edit, "log in, or edit the profile"))
	b.WriteString(row(km.Add, "create an account"))
	b.WriteString(row(km.Delete, "log out"))

	b.WriteString("\n## Forms\n\n| Key | Action |\n|---|---|\n")
	b.WriteString(row("tab / shift+tab", "next / previous field"))
	b.WriteString(row("enter", "next field, submit on the last"))
	b.WriteString(row(km.SaveForm, "submit"))
	b.WriteString(row("esc", "cancel"))

	b.WriteString("\nChanges made by other coffeehub processes appear automatically while the event daemon runs.\n")
	return b.String()
}

func (m Model) viewHelp() string {
	md := m.helpMarkdown()
	renderer, err := getRenderer(max(m.ui.Width()-4, 20))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
