package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/db"
	"github.com/thenoetrevino/coffeehub/internal/cli/employee"
	"github.com/thenoetrevino/coffeehub/internal/cli/member"
	"github.com/thenoetrevino/coffeehub/internal/cli/product"
	"github.com/thenoetrevino/coffeehub/internal/launcher"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "coffeehub",
	Short: "coffeehub - manage the coffee house sample data",
	Long: `coffeehub manages the coffee house sample databases spread over
MySQL (products), Neo4j (employees), MongoDB (member profiles) and Redis
(avatars and id counters), from the command line or a terminal UI.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context())
		},
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &cli.UsageError{Msg: err.Error()}
	})

	rootCmd.AddCommand(db.DBCmd())
	rootCmd.AddCommand(employee.EmployeeCmd())
	rootCmd.AddCommand(product.ProductCmd())
	rootCmd.AddCommand(member.MemberCmd())
	rootCmd.AddCommand(tuiCmd())
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
