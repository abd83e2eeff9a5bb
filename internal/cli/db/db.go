// Package db holds the backend maintenance commands.
//
// e.g., coffeehub db status
package db

import (
	"github.com/spf13/cobra"
)

// DBCmd returns the db parent command
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and prepare the database backends",
	}

	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(ConnectCheckCmd())
	cmd.AddCommand(SeedCmd())

	return cmd
}
