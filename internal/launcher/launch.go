package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/app"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/logging"
	"github.com/thenoetrevino/coffeehub/internal/tui"
)

// Launch starts the TUI application and blocks until it exits or ctx is
// cancelled.
func Launch(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log to file; the terminal belongs to the UI
	if err := logging.Init(cfg.LogDir); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	application := app.New(cfg, app.WithLogger(logging.Logger))
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	p := tea.NewProgram(tui.New(ctx, application), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			slog.Info("shutdown signal received")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
