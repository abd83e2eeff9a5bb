package tui

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/models"
	"github.com/thenoetrevino/coffeehub/internal/tui/state"
)

func (m Model) handleProductKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.handleTableNav(msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Add):
		if m.requireConnection() {
			return m, m.newProductDraft()
		}
	case key.Matches(msg, m.keys.Edit):
		if p := m.selectedProduct(); p != nil {
			return m, m.openProductForm(p, "Edit product "+strconv.Itoa(p.ID))
		}
	case key.Matches(msg, m.keys.Delete):
		if m.selectedProduct() != nil {
			m.ui.SetMode(state.DeleteConfirmMode)
		}
	case key.Matches(msg, m.keys.Filter):
		m.cycleTypeFilter()
	case key.Matches(msg, m.keys.Refresh):
		if m.requireConnection() {
			return m, m.loadProducts()
		}
	}
	return m, nil
}

// cycleTypeFilter steps through all types, then back to no filter.
func (m *Model) cycleTypeFilter() {
	if len(m.productTypes) == 0 {
		m.typeFilter = ""
		return
	}
	next := indexOf(m.productTypes, m.typeFilter) + 1
	if m.typeFilter == "" {
		next = 0
	}
	if next >= len(m.productTypes) {
		m.typeFilter = ""
	} else {
		m.typeFilter = m.productTypes[next]
	}
	m.ui.ClampSelection(state.ProductsTab, 0, len(m.visibleProducts()))
}

func (m *Model) openProductForm(p *models.Product, title string) tea.Cmd {
	f := newForm(productForm, title).
		addReadOnly("id", "ID", strconv.Itoa(p.ID), "").
		add("name", "Name", p.Name, "Product name").
		add("price", "Price", strconv.FormatInt(p.Price, 10), "0").
		add("type", "Type", p.Type, strings.Join(m.productTypes, " / ")).
		add("on_sale", "On sale", yesNo(p.OnSale), "yes / no").
		add("from", "On sale from", p.OnSaleFrom.Format(models.DateLayout), models.DateLayout)
	return m.openForm(f)
}

func productFromForm(f *form) (*models.Product, error) {
	id, err := strconv.Atoi(f.value("id"))
	if err != nil {
		return nil, &models.ValidationError{Field: "id", Reason: "not a number"}
	}
	price, err := strconv.ParseInt(f.value("price"), 10, 64)
	if err != nil {
		return nil, &models.ValidationError{Field: "price", Reason: "expected a whole number, got " + strconv.Quote(f.value("price"))}
	}
	onSale, err := parseYesNo("on sale", f.value("on_sale"))
	if err != nil {
		return nil, err
	}
	from, err := cli.ParseDate("on sale from", f.value("from"))
	if err != nil {
		return nil, err
	}
	return &models.Product{
		ID:         id,
		Name:       f.value("name"),
		Price:      price,
		Type:       f.value("type"),
		OnSale:     onSale,
		OnSaleFrom: from,
	}, nil
}

func (m Model) viewProducts() string {
	if !m.app.Connected() {
		return m.styles.subtle.Render("Connect on the Hub tab to see products.")
	}
	visible := m.visibleProducts()
	rows := make([][]string, len(visible))
	for i, p := range visible {
		rows[i] = []string{
			strconv.Itoa(p.ID),
			p.Name,
			strconv.FormatInt(p.Price, 10),
			p.Type,
			yesNo(p.OnSale),
			p.OnSaleFrom.Format(models.DateLayout),
		}
	}

	filter := "all types"
	if m.typeFilter != "" {
		filter = "type " + m.typeFilter
	}

	var b strings.Builder
	b.WriteString(m.styles.label.Render("Showing "))
	b.WriteString(m.styles.value.Render(filter))
	b.WriteString("\n")
	b.WriteString(renderTable(m.styles,
		[]string{"ID", "Name", "Price", "Type", "On sale", "From"},
		rows, m.ui.Selected(state.ProductsTab), m.ui.ContentHeight()-3))
	b.WriteString("\n")
	b.WriteString(m.tableHints())
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseYesNo(field, v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, &models.ValidationError{Field: field, Reason: "must be yes or no, got " + strconv.Quote(v)}
}
