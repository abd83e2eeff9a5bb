package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/coffeehub/internal/models"
)

// MemberRepo handles member accounts: profiles in the document backend,
// avatar paths in the key-value backend.
type MemberRepo struct {
	profiles ProfileStore
	kv       *redis.Client
}

// NewMemberRepo creates a MemberRepo.
func NewMemberRepo(profiles ProfileStore, kv *redis.Client) *MemberRepo {
	return &MemberRepo{profiles: profiles, kv: kv}
}

// Login looks the username up and compares password hashes. The member is
// only returned on success.
func (r *MemberRepo) Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error) {
	m, err := r.profiles.FindByUsername(ctx, username)
	if err != nil {
		return models.LoginNotFound, nil, err
	}
	if m == nil {
		return models.LoginNotFound, nil, nil
	}
	if m.Password != models.HashPassword(password) {
		return models.LoginWrongPassword, nil, nil
	}
	return models.LoginSuccess, m, nil
}

// GetMember returns the profile with the given id.
func (r *MemberRepo) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m, err := r.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &models.NotFoundError{Entity: "member", Key: id}
	}
	return m, nil
}

// GetAvatarPath returns the stored avatar path or the default one.
func (r *MemberRepo) GetAvatarPath(ctx context.Context, id string) (string, error) {
	path, err := r.kv.Get(ctx, avatarKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.DefaultAvatarPath, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get avatar of member %s: %w", id, err)
	}
	return path, nil
}

// SaveProfile upserts the profile document, then sets the avatar path. The
// two writes are independent: if the second fails the profile stays written
// and a PartialWriteError is returned.
func (r *MemberRepo) SaveProfile(ctx context.Context, m *models.Member) error {
	if err := r.profiles.Upsert(ctx, m); err != nil {
		return err
	}

	avatar := m.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatarPath
	}
	if err := r.kv.Set(ctx, avatarKey(m.ID), avatar, 0).Err(); err != nil {
		return &models.PartialWriteError{
			Completed: []string{"profile"},
			Failed:    "avatar",
			Err:       err,
		}
	}
	return nil
}
