package employee

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// UpsertCmd returns the employee upsert subcommand
func UpsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update an employee",
		Long: `Create an employee, or rewrite every field of an existing one.
Without --id a new id is minted from the global sequence.

Examples:
  coffeehub employee upsert --name="Lan Pham" --birth=1995-04-12 --gender=female \
    --job=Barista --department=Service --branch="District 1"

  # Update, printing only the id
  coffeehub employee upsert --id=EN3 --name="Cuong Le" --birth=1988-02-01 \
    --gender=male --job=Manager --department=Service --branch="Thu Duc" --quiet
`,
		RunE: handler.Command(handler.Func(runUpsert), handler.Connected),
	}

	cmd.Flags().String("id", "", "Employee id (default: mint a new one)")
	for _, name := range []string{"name", "birth", "gender", "job", "department", "branch"} {
		cmd.Flags().String(name, "", name+" (required)")
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Warn("error marking flag as required", "flag", name, "error", err)
		}
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpsert(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	p := handler.NewFlagParser(args.GetCmd())

	e := &models.Employee{}
	var err error
	if e.Name, err = p.ParseString("name"); err != nil {
		return nil, err
	}
	if e.Birth, err = p.ParseDate("birth"); err != nil {
		return nil, err
	}
	if e.Male, err = p.ParseGender("gender"); err != nil {
		return nil, err
	}
	if e.Job, err = p.ParseString("job"); err != nil {
		return nil, err
	}
	if e.Department, err = p.ParseString("department"); err != nil {
		return nil, err
	}
	if e.Branch, err = p.ParseString("branch"); err != nil {
		return nil, err
	}

	svc, err := c.App.Employees()
	if err != nil {
		return nil, err
	}

	e.ID = args.GetString("id", "")
	if e.ID == "" {
		if e.ID, err = svc.NewEmployeeID(ctx); err != nil {
			return nil, err
		}
	}

	if err := svc.Save(ctx, e); err != nil {
		return nil, err
	}
	return Saved{e}, nil
}
