package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/cli/handler"
	"github.com/thenoetrevino/coffeehub/internal/cli/styles"
	"github.com/thenoetrevino/coffeehub/internal/database"
	"github.com/thenoetrevino/coffeehub/internal/events"
)

// StatusResult describes the connection and sample data state.
type StatusResult struct {
	CredentialsPath   string          `json:"credentials_path"`
	DatabaseName      string          `json:"database_name"`
	GraphDatabaseName string          `json:"graph_database_name"`
	Connected         bool            `json:"connected"`
	Seeded            []string        `json:"seeded"`
	Present           map[string]bool `json:"present"`
	Events            string          `json:"events"`
}

func (r *StatusResult) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("coffeehub backends") + "\n")
	b.WriteString(styles.Field("Credentials", r.CredentialsPath) + "\n")
	b.WriteString(styles.Field("Database", r.DatabaseName) + "\n")
	b.WriteString(styles.Field("Graph database", r.GraphDatabaseName) + "\n")
	b.WriteString(styles.Field("Events", r.Events) + "\n")
	b.WriteString(styles.Status(r.Connected, "connected") + "\n")
	for _, backend := range database.AllBackends {
		name := backend.String()
		b.WriteString(styles.Status(r.Present[name], name+" sample data") + "\n")
	}
	if len(r.Seeded) > 0 {
		b.WriteString(styles.SubtitleStyle.Render("seeded just now: " + strings.Join(r.Seeded, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

// StatusCmd returns the db status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Connect to every backend and report the sample data state",
		Long: `Run the full connect flow (connect, seed missing sample data, select
databases) and report what is present.

Examples:
  coffeehub db status
  coffeehub db status --json
`,
		RunE: handler.Command(handler.Func(runStatus), handler.Offline),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runStatus(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	dbName, graphName := c.App.Manager().DatabaseNames()
	result := &StatusResult{
		CredentialsPath:   c.Config.CredentialsPath,
		DatabaseName:      dbName,
		GraphDatabaseName: graphName,
		Present:           map[string]bool{},
		Events:            transportName(c.App.Events()),
	}

	seeded, err := c.Connect()
	if err != nil {
		return nil, err
	}
	result.Connected = true
	for _, b := range seeded {
		result.Seeded = append(result.Seeded, b.String())
	}

	seeder, err := c.App.Manager().Seeder()
	if err != nil {
		return nil, err
	}
	present, err := seeder.Check(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check sample data: %w", err)
	}
	for b, ok := range present {
		result.Present[b.String()] = ok
	}
	return result, nil
}

func transportName(p events.EventPublisher) string {
	if _, ok := p.(*events.Client); ok {
		return "daemon"
	}
	return "in-process"
}
