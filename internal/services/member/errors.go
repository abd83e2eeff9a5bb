package member

import "github.com/thenoetrevino/coffeehub/internal/models"

// Domain errors for member service
var (
	ErrEmptyID          error = &models.ValidationError{Field: "member id", Reason: "cannot be empty"}
	ErrEmptyUsername    error = &models.ValidationError{Field: "username", Reason: "cannot be empty"}
	ErrPasswordRequired error = &models.ValidationError{Field: "password", Reason: "required for a new account"}
	ErrPasswordMismatch error = &models.ValidationError{Field: "password", Reason: "confirmation does not match"}
)
