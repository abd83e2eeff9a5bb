package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
)

// ListCmd returns the product list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products ordered by id",
		RunE:  handler.Command(handler.Func(runList), handler.Connected),
	}
	cmd.Flags().String("type", "", "Only products of this type code (e.g. CF)")
	cmd.Flags().Bool("on-sale", false, "Only products currently on sale")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Products()
	if err != nil {
		return nil, err
	}
	products, err := svc.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	typeCode := args.GetString("type", "")
	onSale := args.GetBool("on-sale")
	out := make(List, 0, len(products))
	for _, p := range products {
		if typeCode != "" && !strings.EqualFold(p.Type, typeCode) {
			continue
		}
		if onSale && !p.OnSale {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Types is a printable list of product type codes.
type Types []string

func (t Types) Keys() []string { return t }

func (t Types) Human() string { return "  " + strings.Join(t, "\n  ") }

// TypesCmd returns the product types subcommand
func TypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List product type codes",
		RunE: handler.Command(handler.Func(func(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
			svc, err := c.App.Products()
			if err != nil {
				return nil, err
			}
			types, err := svc.ListProductTypes(ctx)
			if err != nil {
				return nil, err
			}
			return Types(types), nil
		}), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

// NextID is the id the next new product would get.
type NextID int

func (n NextID) GetID() int { return int(n) }

func (n NextID) Human() string { return fmt.Sprintf("Next product id: %d", int(n)) }

// NextIDCmd returns the product next-id subcommand
func NextIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next-id",
		Short: "Print the id a new product would get",
		RunE: handler.Command(handler.Func(func(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
			svc, err := c.App.Products()
			if err != nil {
				return nil, err
			}
			id, err := svc.NextProductID(ctx)
			if err != nil {
				return nil, err
			}
			return NextID(id), nil
		}), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}
