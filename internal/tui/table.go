package tui

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// renderTable draws rows with the selected one highlighted, scrolled so the
// selection stays within height rows.
func renderTable(st styles, headers []string, rows [][]string, selected, height int) string {
	if len(rows) == 0 {
		return st.subtle.Render("no rows")
	}

	// header and borders take four lines
	visible := max(height-4, 1)
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := min(start+visible, len(rows))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows[start:end]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case start+row == selected:
				return st.selected.Padding(0, 1)
			default:
				return st.cell
			}
		})

	out := t.String()
	if len(rows) > visible {
		out += "\n" + st.subtle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(rows)))
	}
	return out
}
