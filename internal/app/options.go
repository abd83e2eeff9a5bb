package app

import (
	"log/slog"

	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient     events.EventPublisher
	logger          *slog.Logger
	origin          string
	loadCredentials func(path string) (*config.Credentials, error)
}

// WithEventPublisher sets the event publisher instead of dialing the daemon
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithOrigin fixes the origin stamped on published events.
func WithOrigin(origin string) Option {
	return func(cfg *appConfig) {
		cfg.origin = origin
	}
}

// WithCredentialsLoader replaces config.LoadCredentials.
func WithCredentialsLoader(load func(path string) (*config.Credentials, error)) Option {
	return func(cfg *appConfig) {
		cfg.loadCredentials = load
	}
}
