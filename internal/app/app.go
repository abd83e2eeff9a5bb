package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/database"
	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
	employeeservice "github.com/thenoetrevino/coffeehub/internal/services/employee"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
	productservice "github.com/thenoetrevino/coffeehub/internal/services/product"
)

// daemonDialTimeout bounds the attempt to reach a running event daemon.
const daemonDialTimeout = 500 * time.Millisecond

// App is the application container: configuration, the backend connection
// manager, the services built on it and the event publisher. Views get an
// *App instead of reaching for globals.
type App struct {
	cfg             *config.Config
	manager         *database.Manager
	eventClient     events.EventPublisher
	origin          string
	logger          *slog.Logger
	loadCredentials func(path string) (*config.Credentials, error)

	mu        sync.RWMutex
	employees employeeservice.Service
	products  productservice.Service
	members   memberservice.Service
}

// New creates a disconnected App. Without WithEventPublisher it dials the
// event daemon at cfg.SocketPath and falls back to an in-process bus.
func New(cfg *config.Config, opts ...Option) *App {
	ac := appConfig{
		logger:          slog.Default(),
		loadCredentials: config.LoadCredentials,
	}
	for _, opt := range opts {
		opt(&ac)
	}
	if ac.origin == "" {
		ac.origin = uuid.NewString()
	}
	if ac.eventClient == nil {
		ac.eventClient = dialPublisher(cfg.SocketPath, ac.logger)
	}

	return &App{
		cfg: cfg,
		manager: database.NewManager(
			database.WithDatabaseNames(cfg.DatabaseName, cfg.GraphDatabaseName),
			database.WithConnectTimeout(cfg.ConnectTimeout),
			database.WithManagerLogger(ac.logger),
		),
		eventClient:     ac.eventClient,
		origin:          ac.origin,
		logger:          ac.logger,
		loadCredentials: ac.loadCredentials,
	}
}

func dialPublisher(socketPath string, logger *slog.Logger) events.EventPublisher {
	client, err := events.NewClient(socketPath)
	if err != nil {
		logger.Debug("event daemon disabled", "error", err)
		return events.NewBus()
	}

	ctx, cancel := context.WithTimeout(context.Background(), daemonDialTimeout)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		_ = client.Close()
		logger.Info("event daemon not reachable, using in-process events",
			"socket", socketPath, "hint", events.DialHint(err))
		return events.NewBus()
	}
	logger.Info("connected to event daemon", "socket", socketPath)
	return client
}

// Config returns the application configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Manager returns the backend connection manager.
func (a *App) Manager() *database.Manager { return a.manager }

// Events returns the publisher views subscribe to.
func (a *App) Events() events.EventPublisher { return a.eventClient }

// Origin identifies this App on published events.
func (a *App) Origin() string { return a.origin }

// Connect runs the full connect flow: load credentials, open every backend,
// seed whichever sample databases are missing and select them. It returns
// the backends that were seeded.
func (a *App) Connect(ctx context.Context) ([]database.Backend, error) {
	creds, err := a.loadCredentials(a.cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	if err := a.manager.Connect(ctx, creds); err != nil {
		a.manager.Disconnect()
		return nil, err
	}

	seeder, err := a.manager.Seeder()
	if err != nil {
		return nil, err
	}
	seeded, err := seeder.SeedMissing(ctx)
	if err != nil {
		return seeded, err
	}

	if err := a.manager.SelectDatabases(ctx); err != nil {
		return seeded, err
	}

	repo, err := a.manager.Repository()
	if err != nil {
		return seeded, err
	}
	a.attach(repo)

	a.logger.Info("connected", "seeded", len(seeded))
	return seeded, nil
}

// attach builds the services over store.
func (a *App) attach(store database.DataStore) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.employees = employeeservice.NewService(store, store, a.eventClient, a.origin)
	a.products = productservice.NewService(store, a.eventClient, a.origin)
	a.members = memberservice.NewService(store, store, a.eventClient, a.origin)
}

// Disconnect drops the services and closes every backend session.
func (a *App) Disconnect() {
	a.mu.Lock()
	a.employees, a.products, a.members = nil, nil, nil
	a.mu.Unlock()
	a.manager.Disconnect()
}

// Connected reports whether the services are usable.
func (a *App) Connected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.employees != nil
}

// SeedStatus reports, per backend, whether its sample database exists.
func (a *App) SeedStatus(ctx context.Context) (map[database.Backend]bool, error) {
	seeder, err := a.manager.Seeder()
	if err != nil {
		return nil, err
	}
	return seeder.Check(ctx)
}

// Seed creates the sample database on b if it is missing.
func (a *App) Seed(ctx context.Context, b database.Backend) (bool, error) {
	seeder, err := a.manager.Seeder()
	if err != nil {
		return false, err
	}
	return seeder.Seed(ctx, b)
}

// Employees returns the employee service or ErrNotConnected.
func (a *App) Employees() (employeeservice.Service, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.employees == nil {
		return nil, models.ErrNotConnected
	}
	return a.employees, nil
}

// Products returns the product service or ErrNotConnected.
func (a *App) Products() (productservice.Service, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.products == nil {
		return nil, models.ErrNotConnected
	}
	return a.products, nil
}

// Members returns the member service or ErrNotConnected.
func (a *App) Members() (memberservice.Service, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.members == nil {
		return nil, models.ErrNotConnected
	}
	return a.members, nil
}

// Close disconnects and closes the event publisher.
func (a *App) Close() error {
	a.Disconnect()
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	return nil
}
