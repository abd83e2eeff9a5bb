package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Service defines member account operations
type Service interface {
	Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Avatar(ctx context.Context, id string) (string, error)
	NewAccount(ctx context.Context) (*models.Member, error)
	Save(ctx context.Context, req SaveRequest) error
}

// SaveRequest carries a profile and an optional password change.
// NewPassword is plain text; it is hashed before storage.
type SaveRequest struct {
	Member      *models.Member
	NewPassword string
	Confirm     string
}

type repository interface {
	Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	GetAvatarPath(ctx context.Context, id string) (string, error)
	SaveProfile(ctx context.Context, m *models.Member) error
}

type sequence interface {
	NextGlobalID(ctx context.Context) (int64, error)
}

type service struct {
	repo        repository
	seq         sequence
	eventClient events.EventPublisher
	origin      string
	now         func() time.Time
}

// NewService creates a member service
func NewService(repo repository, seq sequence, eventClient events.EventPublisher, origin string) Service {
	return &service{
		repo:        repo,
		seq:         seq,
		eventClient: eventClient,
		origin:      origin,
		now:         time.Now,
	}
}

// Login checks the credentials and, on success, returns the member with
// the avatar path attached.
func (s *service) Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error) {
	result, m, err := s.repo.Login(ctx, username, password)
	if err != nil {
		return result, nil, fmt.Errorf("failed to log in %q: %w", username, err)
	}
	slog.Info("login", "backend", "document", "username", username, "result", result.String())
	if result != models.LoginSuccess {
		return result, nil, nil
	}

	if m.Avatar, err = s.repo.GetAvatarPath(ctx, m.ID); err != nil {
		return result, nil, err
	}
	return result, m, nil
}

// Get returns the profile and avatar of one member.
func (s *service) Get(ctx context.Context, id string) (*models.Member, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Avatar, err = s.repo.GetAvatarPath(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Avatar(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyID
	}
	return s.repo.GetAvatarPath(ctx, id)
}

// NewAccount returns an unsaved account with a freshly minted id. The id
// doubles as the username and birth defaults to today.
func (s *service) NewAccount(ctx context.Context) (*models.Member, error) {
	n, err := s.seq.NextGlobalID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mint member id: %w", err)
	}
	id := fmt.Sprintf(models.MemberIDFormat, n)
	y, mo, d := s.now().Date()
	return &models.Member{
		ID:       id,
		Username: id,
		Level:    models.DefaultMemberLevel,
		Birth:    time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		Avatar:   models.DefaultAvatarPath,
	}, nil
}

// Save writes the profile and the avatar path. A member with no stored
// password must be given one. On a PartialWriteError the profile was
// written, so subscribers are still told about it.
func (s *service) Save(ctx context.Context, req SaveRequest) error {
	m := req.Member
	switch {
	case m == nil || strings.TrimSpace(m.ID) == "":
		return ErrEmptyID
	case strings.TrimSpace(m.Username) == "":
		return ErrEmptyUsername
	case req.NewPassword != req.Confirm:
		return ErrPasswordMismatch
	case req.NewPassword == "" && !m.HasPassword():
		return ErrPasswordRequired
	}

	toSave := *m
	if req.NewPassword != "" {
		toSave.Password = models.HashPassword(req.NewPassword)
	}

	err := s.repo.SaveProfile(ctx, &toSave)
	var partial *models.PartialWriteError
	if err != nil && !errors.As(err, &partial) {
		return fmt.Errorf("failed to save member %s: %w", m.ID, err)
	}

	m.Password = toSave.Password
	if partial != nil {
		slog.Warn("member partially saved", "backend", "key-value", "action", "upsert", "entity", "member", "id", m.ID, "error", err)
	} else {
		slog.Info("saved", "backend", "document", "action", "upsert", "entity", "member", "id", m.ID)
	}
	s.publish(m.ID)
	return err
}

func (s *service) publish(id string) {
	if s.eventClient == nil {
		return
	}
	event := events.Event{Type: events.EventEntityChanged, Kind: events.KindMember, EntityID: id, Origin: s.origin}
	if err := events.PublishWithRetry(s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish member event", "id", id, "error", err)
	}
}
