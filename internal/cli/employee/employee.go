// Package employee holds the HR commands.
//
// e.g., coffeehub employee list
package employee

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// EmployeeCmd returns the employee parent command
func EmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees (graph backend)",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(JobsCmd())
	cmd.AddCommand(DepartmentsCmd())
	cmd.AddCommand(BranchesCmd())
	cmd.AddCommand(UpsertCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// List is a printable list of employees.
type List []*models.Employee

func (l List) Keys() []string {
	ids := make([]string, len(l))
	for i, e := range l {
		ids[i] = e.ID
	}
	return ids
}

func (l List) Human() string {
	if len(l) == 0 {
		return "No employees found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d employees:\n\n", len(l))
	for _, e := range l {
		fmt.Fprintf(&b, "  [%s] %s (%s, born %s)\n", e.ID, styles.ValueStyle.Render(e.Name),
			cli.GenderLabel(e.Male), formatDate(e))
		fmt.Fprintf(&b, "        %s · %s · %s\n", orDash(e.Job), orDash(e.Department), orDash(e.Branch))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Saved reports an upserted employee.
type Saved struct {
	*models.Employee
}

func (s Saved) GetKey() string { return s.ID }

func (s Saved) Human() string {
	return styles.Status(true, fmt.Sprintf("Employee %s (%s) saved", s.ID, s.Name))
}

// Names is a printable list of reference names.
type Names []string

func (n Names) Keys() []string { return n }

func (n Names) Human() string {
	if len(n) == 0 {
		return "None found"
	}
	return "  " + strings.Join(n, "\n  ")
}

func formatDate(e *models.Employee) string {
	if e.Birth.IsZero() {
		return "?"
	}
	return e.Birth.Format(models.DateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
