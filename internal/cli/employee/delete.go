package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
)

// Deleted reports deleted employee ids.
type Deleted []string

func (d Deleted) Keys() []string { return d }

func (d Deleted) Human() string {
	return styles.Status(true, fmt.Sprintf("Deleted %d employee(s): %s", len(d), strings.Join(d, ", ")))
}

// DeleteCmd returns the employee delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete employees and their relationships",
		Args:  cobra.MinimumNArgs(1),
		RunE:  handler.Command(handler.Func(runDelete), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Employees()
	if err != nil {
		return nil, err
	}
	if err := svc.Delete(ctx, args.Args...); err != nil {
		return nil, err
	}
	return Deleted(args.Args), nil
}
