package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Service defines the HR operations on employees
type Service interface {
	// Read operations
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	ListJobs(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context) ([]string, error)

	// Write operations
	NewEmployeeID(ctx context.Context) (string, error)
	Save(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, ids ...string) error
}

// repository is the graph accessor surface the service needs
type repository interface {
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	ListJobs(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context) ([]string, error)
	UpsertEmployee(ctx context.Context, e *models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

type sequence interface {
	NextGlobalID(ctx context.Context) (int64, error)
}

type service struct {
	repo        repository
	seq         sequence
	eventClient events.EventPublisher
	origin      string
}

// NewService creates an employee service. Events are tagged with origin so
// the publishing view can ignore its own changes.
func NewService(repo repository, seq sequence, eventClient events.EventPublisher, origin string) Service {
	return &service{
		repo:        repo,
		seq:         seq,
		eventClient: eventClient,
		origin:      origin,
	}
}

func (s *service) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *service) ListJobs(ctx context.Context) ([]string, error) {
	return s.repo.ListJobs(ctx)
}

func (s *service) ListDepartments(ctx context.Context) ([]string, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *service) ListBranches(ctx context.Context) ([]string, error) {
	return s.repo.ListBranches(ctx)
}

// NewEmployeeID mints the next id from the global sequence, e.g. "EN101".
func (s *service) NewEmployeeID(ctx context.Context) (string, error) {
	n, err := s.seq.NextGlobalID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to mint employee id: %w", err)
	}
	return fmt.Sprintf("%s%d", models.EmployeeIDPrefix, n), nil
}

// Save validates and upserts an employee.
func (s *service) Save(ctx context.Context, e *models.Employee) error {
	if err := validate(e); err != nil {
		return err
	}

	if err := s.repo.UpsertEmployee(ctx, e); err != nil {
		return fmt.Errorf("failed to save employee %s: %w", e.ID, err)
	}

	slog.Info("saved", "backend", "graph", "action", "upsert", "entity", "employee", "id", e.ID)
	s.publish(events.EventEntityChanged, e.ID)
	return nil
}

// Delete removes the employees one by one and stops at the first failure.
// Employees deleted before the failure stay deleted.
func (s *service) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return ErrNoIDs
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyID
		}
	}

	deleted := 0
	defer func() {
		if deleted == 0 {
			return
		}
		entityID := ""
		if deleted == 1 {
			entityID = ids[0]
		}
		s.publish(events.EventEntityDeleted, entityID)
	}()

	for _, id := range ids {
		if err := s.repo.DeleteEmployee(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee %s: %w", id, err)
		}
		deleted++
		slog.Info("deleted", "backend", "graph", "action", "delete", "entity", "employee", "id", id)
	}
	return nil
}

func validate(e *models.Employee) error {
	switch {
	case e == nil || strings.TrimSpace(e.ID) == "":
		return ErrEmptyID
	case strings.TrimSpace(e.Name) == "":
		return ErrEmptyName
	case e.Birth.IsZero():
		return ErrMissingBirth
	case e.Job == "":
		return ErrMissingJob
	case e.Department == "":
		return ErrMissingDepartment
	case e.Branch == "":
		return ErrMissingBranch
	}
	return nil
}

func (s *service) publish(t events.EventType, id string) {
	if s.eventClient == nil {
		return
	}
	event := events.Event{Type: t, Kind: events.KindEmployee, EntityID: id, Origin: s.origin}
	if err := events.PublishWithRetry(s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish employee event", "id", id, "error", err)
	}
}
