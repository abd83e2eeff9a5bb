package db

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/database"
)

// SeedOutcome is the result for one backend.
type SeedOutcome struct {
	Backend string `json:"backend"`
	Seeded  bool   `json:"seeded"`
}

// SeedResult lists the outcome per requested backend.
type SeedResult []SeedOutcome

func (r SeedResult) Human() string {
	lines := make([]string, 0, len(r))
	for _, o := range r {
		if o.Seeded {
			lines = append(lines, styles.Status(true, o.Backend+": seeded"))
		} else {
			lines = append(lines, styles.SubtitleStyle.Render("- "+o.Backend+": already present"))
		}
	}
	return strings.Join(lines, "\n")
}

// Keys lists the backends that were seeded.
func (r SeedResult) Keys() []string {
	var out []string
	for _, o := range r {
		if o.Seeded {
			out = append(out, o.Backend)
		}
	}
	return out
}

// SeedCmd returns the db seed subcommand
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled sample data where it is missing",
		Long: `Load the bundled sample data into each backend whose database is
absent. Backends that already hold it are left untouched.

Examples:
  coffeehub db seed
  coffeehub db seed --backend graph --backend redis
`,
		RunE: handler.Command(handler.Func(runSeed), handler.Offline),
	}
	cmd.Flags().StringSlice("backend", nil, "Backend to seed: relational, graph, document, key-value (repeatable; default all)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runSeed(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	backends := database.AllBackends
	if names := args.GetStringSlice("backend", nil); len(names) > 0 {
		backends = backends[:0:0]
		for _, n := range names {
			b, err := database.ParseBackend(n)
			if err != nil {
				return nil, &cli.UsageError{Msg: err.Error()}
			}
			backends = append(backends, b)
		}
	}

	creds, err := config.LoadCredentials(c.Config.CredentialsPath)
	if err != nil {
		return nil, err
	}
	manager := c.App.Manager()
	if err := manager.Connect(ctx, creds); err != nil {
		return nil, err
	}
	seeder, err := manager.Seeder()
	if err != nil {
		return nil, err
	}

	result := make(SeedResult, 0, len(backends))
	for _, b := range backends {
		seeded, err := seeder.Seed(ctx, b)
		if err != nil {
			return nil, err
		}
		result = append(result, SeedOutcome{Backend: b.String(), Seeded: seeded})
	}
	return result, nil
}
