package employee

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
)

// ListCmd returns the employee list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all employees with their job title, department and branch",
		RunE:  handler.Command(handler.Func(runList), handler.Connected),
	}
	cmd.Flags().String("branch", "", "Only employees of this branch")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	svc, err := c.App.Employees()
	if err != nil {
		return nil, err
	}
	employees, err := svc.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	branch := args.GetString("branch", "")
	out := make(List, 0, len(employees))
	for _, e := range employees {
		if branch == "" || e.Branch == branch {
			out = append(out, e)
		}
	}
	return out, nil
}

// JobsCmd returns the employee jobs subcommand
func JobsCmd() *cobra.Command {
	return namesCmd("jobs", "List job titles", func(ctx context.Context, c *cli.CLI) ([]string, error) {
		svc, err := c.App.Employees()
		if err != nil {
			return nil, err
		}
		return svc.ListJobs(ctx)
	})
}

// DepartmentsCmd returns the employee departments subcommand
func DepartmentsCmd() *cobra.Command {
	return namesCmd("departments", "List departments", func(ctx context.Context, c *cli.CLI) ([]string, error) {
		svc, err := c.App.Employees()
		if err != nil {
			return nil, err
		}
		return svc.ListDepartments(ctx)
	})
}

// BranchesCmd returns the employee branches subcommand
func BranchesCmd() *cobra.Command {
	return namesCmd("branches", "List branches", func(ctx context.Context, c *cli.CLI) ([]string, error) {
		svc, err := c.App.Employees()
		if err != nil {
			return nil, err
		}
		return svc.ListBranches(ctx)
	})
}

func namesCmd(use, short string, list func(ctx context.Context, c *cli.CLI) ([]string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: handler.Command(handler.Func(func(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
			names, err := list(ctx, c)
			if err != nil {
				return nil, err
			}
			return Names(names), nil
		}), handler.Connected),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}
