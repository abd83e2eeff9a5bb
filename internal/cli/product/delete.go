package product

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
)

// Deleted reports deleted product ids.
type Deleted []int

func (d Deleted) Keys() []string {
	out := make([]string, len(d))
	for i, id := range d {
		out[i] = fmt.Sprint(id)
	}
	return out
}

func (d Deleted) Human() string {
	return styles.Status(true, fmt.Sprintf("Deleted %d product(s): %v", len(d), []int(d)))
}

// DeleteCmd returns the product delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete products by id",
		Long: `Delete products by id. Ids that do not exist are ignored.

Examples:
  coffeehub product delete 3
  coffeehub product delete 3 4 9 --json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: handler.Command(handler.Func(runDelete), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	ids, err := cli.ParseIDs(args.Args)
	if err != nil {
		return nil, err
	}
	svc, err := c.App.Products()
	if err != nil {
		return nil, err
	}
	if err := svc.Delete(ctx, ids...); err != nil {
		return nil, err
	}
	return Deleted(ids), nil
}
