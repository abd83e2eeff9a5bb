package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Member is a member account. The profile lives in the document store,
// the avatar path in the key-value store.
type Member struct {
	ID       string    `bson:"id" json:"id"`
	Username string    `bson:"username" json:"username"`
	Password string    `bson:"password" json:"-"`
	Level    string    `bson:"level" json:"level"`
	FullName string    `bson:"fullname" json:"fullname"`
	Birth    time.Time `bson:"birth" json:"birth"`
	Phone    string    `bson:"phone" json:"phone"`
	Email    string    `bson:"email" json:"email"`
	Address  string    `bson:"address" json:"address"`
	Avatar   string    `bson:"-" json:"avatar"`
}

// HasPassword reports whether a password hash has been set.
func (m *Member) HasPassword() bool { return m.Password != "" }

// LoginResult is the outcome of a login attempt.
type LoginResult int

const (
	LoginSuccess LoginResult = iota
	LoginNotFound
	LoginWrongPassword
)

func (r LoginResult) String() string {
	switch r {
	case LoginSuccess:
		return "successful"
	case LoginNotFound:
		return "not-found"
	case LoginWrongPassword:
		return "wrong"
	default:
		return "unknown"
	}
}

// HashPassword returns the lowercase hex SHA-256 of the UTF-8 password.
// Stored hashes were produced this way, so the function must not change.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
