package db

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// ConnectCheckResult reports a bare connect attempt.
type ConnectCheckResult struct {
	OK      bool   `json:"ok"`
	Elapsed string `json:"elapsed"`
}

func (r *ConnectCheckResult) Human() string {
	return styles.Status(r.OK, "all four backends reachable ("+r.Elapsed+")")
}

// ConnectCheckCmd returns the db connect-check subcommand
func ConnectCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect-check",
		Short: "Open and close a session on every backend without touching data",
		RunE:  handler.Command(handler.Func(runConnectCheck), handler.Offline),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runConnectCheck(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	creds, err := config.LoadCredentials(c.Config.CredentialsPath)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	manager := c.App.Manager()
	if err := manager.Connect(ctx, creds); err != nil {
		manager.Disconnect()
		return nil, err
	}
	manager.Disconnect()

	return &ConnectCheckResult{OK: true, Elapsed: time.Since(start).Round(time.Millisecond).String()}, nil
}
