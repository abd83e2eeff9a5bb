package state

// Tab is one of the top-level screens of the TUI.
type Tab int

const (
	HubTab Tab = iota
	HRTab
	ProductsTab
	MemberTab
	LogTab
	HelpTab
)

// Tabs lists every tab in display order.
var Tabs = []Tab{HubTab, HRTab, ProductsTab, MemberTab, LogTab, HelpTab}

func (t Tab) String() string {
	switch t {
	case HubTab:
		return "Hub"
	case HRTab:
		return "HR"
	case ProductsTab:
		return "Products"
	case MemberTab:
		return "Member"
	case LogTab:
		return "Log"
	case HelpTab:
		return "Help"
	default:
		return "?"
	}
}

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	FormMode                      // Editing a record in a form
	DeleteConfirmMode             // Confirming deletion of the selected row
)

// UIState manages the user interface state: the active tab, the
// per-tab row selection, terminal dimensions and the interaction mode.
type UIState struct {
	tab    Tab
	mode   Mode
	width  int
	height int

	// selected row per table tab
	selected map[Tab]int
}

// NewUIState creates a new UIState on the hub tab.
func NewUIState() *UIState {
	return &UIState{
		tab:      HubTab,
		mode:     NormalMode,
		selected: make(map[Tab]int),
	}
}

func (s *UIState) Tab() Tab {
	return s.tab
}

// SetTab switches tabs and drops back to normal mode.
func (s *UIState) SetTab(t Tab) {
	s.tab = t
	s.mode = NormalMode
}

// NextTab moves one tab right, wrapping around.
func (s *UIState) NextTab() {
	s.SetTab(Tab((int(s.tab) + 1) % len(Tabs)))
}

// PrevTab moves one tab left, wrapping around.
func (s *UIState) PrevTab() {
	s.SetTab(Tab((int(s.tab) - 1 + len(Tabs)) % len(Tabs)))
}

func (s *UIState) Mode() Mode {
	return s.mode
}

func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

func (s *UIState) Width() int {
	return s.width
}

func (s *UIState) SetWidth(width int) {
	s.width = width
}

func (s *UIState) Height() int {
	return s.height
}

func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight is the height left for tab content below the tab bar and
// above the status line.
func (s *UIState) ContentHeight() int {
	return max(s.height-4, 1)
}

// Selected returns the selected row index on tab t.
func (s *UIState) Selected(t Tab) int {
	return s.selected[t]
}

// MoveSelection moves the selection on the current tab by delta, clamped
// to [0, rows).
func (s *UIState) MoveSelection(delta, rows int) {
	s.ClampSelection(s.tab, s.selected[s.tab]+delta, rows)
}

// ClampSelection sets the selection on tab t to index, clamped to [0, rows).
func (s *UIState) ClampSelection(t Tab, index, rows int) {
	if rows <= 0 {
		s.selected[t] = 0
		return
	}
	s.selected[t] = min(max(index, 0), rows-1)
}
