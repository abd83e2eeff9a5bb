// Package cli holds the plumbing shared by the coffeehub commands: the
// application handle, output formatting and exit codes.
package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/coffeehub/internal/app"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	ctx    context.Context
}

// NewCLI loads the config and builds a disconnected App. The App dials the
// event daemon if one is running, so writes still refresh open terminals.
func NewCLI(ctx context.Context, opts ...app.Option) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &CLI{
		App:    app.New(cfg, opts...),
		Config: cfg,
		ctx:    ctx,
	}, nil
}

// Open is NewCLI followed by the full connect flow.
func Open(ctx context.Context, opts ...app.Option) (*CLI, error) {
	c, err := NewCLI(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := c.Connect(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Connect connects every backend, seeding missing sample data.
func (c *CLI) Connect() ([]database.Backend, error) {
	return c.App.Connect(c.ctx)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
