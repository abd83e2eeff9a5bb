package product

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Service defines the product manager operations
type Service interface {
	// Read operations
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductTypes(ctx context.Context) ([]string, error)
	NextProductID(ctx context.Context) (int, error)

	// Write operations
	NewProductDraft(ctx context.Context) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, ids ...int) error
}

type repository interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductTypes(ctx context.Context) ([]string, error)
	NextProductID(ctx context.Context) (int, error)
	UpsertProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type service struct {
	repo        repository
	eventClient events.EventPublisher
	origin      string
	now         func() time.Time
}

// NewService creates a product service
func NewService(repo repository, eventClient events.EventPublisher, origin string) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		origin:      origin,
		now:         time.Now,
	}
}

func (s *service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) ListProductTypes(ctx context.Context) ([]string, error) {
	return s.repo.ListProductTypes(ctx)
}

func (s *service) NextProductID(ctx context.Context) (int, error) {
	return s.repo.NextProductID(ctx)
}

// NewProductDraft returns an unsaved product with the next free id, on
// sale from today, typed with the first known product type.
func (s *service) NewProductDraft(ctx context.Context) (*models.Product, error) {
	id, err := s.repo.NextProductID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get next product id: %w", err)
	}
	types, err := s.repo.ListProductTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}

	y, m, d := s.now().Date()
	draft := &models.Product{
		ID:         id,
		OnSale:     true,
		OnSaleFrom: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
	if len(types) > 0 {
		draft.Type = types[0]
	}
	return draft, nil
}

// Save validates and upserts a product.
func (s *service) Save(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	if err := s.repo.UpsertProduct(ctx, p); err != nil {
		return fmt.Errorf("failed to save product %d: %w", p.ID, err)
	}

	slog.Info("saved", "backend", "relational", "action", "upsert", "entity", "product", "id", p.ID)
	s.publish(events.EventEntityChanged, strconv.Itoa(p.ID))
	return nil
}

// Delete removes products in order and stops at the first failure.
func (s *service) Delete(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return ErrNoIDs
	}
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidProductID
		}
	}

	var deleted []int
	defer func() {
		switch len(deleted) {
		case 0:
		case 1:
			s.publish(events.EventEntityDeleted, strconv.Itoa(deleted[0]))
		default:
			s.publish(events.EventEntityDeleted, "")
		}
	}()

	for _, id := range ids {
		if err := s.repo.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		deleted = append(deleted, id)
		slog.Info("deleted", "backend", "relational", "action", "delete", "entity", "product", "id", id)
	}
	return nil
}

func validate(p *models.Product) error {
	switch {
	case p == nil || p.ID <= 0:
		return ErrInvalidProductID
	case strings.TrimSpace(p.Name) == "":
		return ErrEmptyName
	case p.Price < 0:
		return ErrNegativePrice
	case p.Type == "":
		return ErrMissingType
	case p.OnSaleFrom.IsZero():
		return ErrMissingSaleDate
	}
	return nil
}

func (s *service) publish(t events.EventType, id string) {
	if s.eventClient == nil {
		return
	}
	event := events.Event{Type: t, Kind: events.KindProduct, EntityID: id, Origin: s.origin}
	if err := events.PublishWithRetry(s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish product event", "id", id, "error", err)
	}
}
