package product

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
)

// UpsertCmd returns the product upsert subcommand
func UpsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update a product",
		Long: `Create a product, or rewrite every field of an existing one.
Without --id the next free id is used; without --from the sale date is today.

Examples:
  coffeehub product upsert --name="Cold Brew" --price=55000 --type=CF --on-sale
  coffeehub product upsert --id=4 --name="Peach Tea" --price=49000 --type=TEA --from=2024-05-01 --quiet
`,
		RunE: handler.Command(handler.Func(runUpsert), handler.Connected),
	}

	cmd.Flags().Int("id", 0, "Product id (default: next free id)")
	cmd.Flags().String("name", "", "Product name (required)")
	cmd.Flags().Int64("price", 0, "Price (required)")
	cmd.Flags().String("type", "", "Product type code (default: first type)")
	cmd.Flags().Bool("on-sale", false, "Whether the product is on sale")
	cmd.Flags().String("from", "", "On sale from, YYYY-MM-DD")
	for _, name := range []string{"name", "price"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Warn("error marking flag as required", "flag", name, "error", err)
		}
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpsert(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := handler.NewFlagParser(args.GetCmd())

	svc, err := c.App.Products()
	if err != nil {
		return nil, err
	}
	product, err := svc.NewProductDraft(ctx)
	if err != nil {
		return nil, err
	}

	if p.Changed("id") {
		if product.ID, err = p.ParseID("id"); err != nil {
			return nil, err
		}
	}
	if product.Name, err = p.ParseString("name"); err != nil {
		return nil, err
	}
	if product.Price, err = p.ParseInt64("price"); err != nil {
		return nil, err
	}
	if t := args.GetString("type", ""); t != "" {
		product.Type = t
	}
	if product.OnSale, err = p.ParseBool("on-sale"); err != nil {
		return nil, err
	}
	if p.Changed("from") {
		if product.OnSaleFrom, err = p.ParseDate("from"); err != nil {
			return nil, err
		}
	}

	if err := svc.Save(ctx, product); err != nil {
		return nil, err
	}
	return Saved{product}, nil
}
