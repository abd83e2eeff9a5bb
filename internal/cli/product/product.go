// Package product holds the product manager commands.
//
// e.g., coffeehub product list --type CF
package product

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// ProductCmd returns the product parent command
func ProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products (relational backend)",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(TypesCmd())
	cmd.AddCommand(NextIDCmd())
	cmd.AddCommand(UpsertCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// List is a printable list of products.
type List []*models.Product

func (l List) Keys() []string {
	ids := make([]string, len(l))
	for i, p := range l {
		ids[i] = fmt.Sprint(p.ID)
	}
	return ids
}

func (l List) Human() string {
	if len(l) == 0 {
		return "No products found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d products:\n\n", len(l))
	for _, p := range l {
		sale := "off sale"
		if p.OnSale {
			sale = "on sale since " + p.OnSaleFrom.Format(models.DateLayout)
		}
		fmt.Fprintf(&b, "  [%d] %-28s %-4s %10d  %s\n", p.ID, styles.ValueStyle.Render(p.Name), p.Type, p.Price, sale)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Saved reports an upserted product.
type Saved struct {
	*models.Product
}

func (s Saved) Human() string {
	return styles.Status(true, fmt.Sprintf("Product %d (%s) saved", s.ID, s.Name))
}
