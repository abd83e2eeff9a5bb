package product

import "github.com/thenoetrevino/coffeehub/internal/models"

// Domain errors for product service
var (
	ErrInvalidProductID error = &models.ValidationError{Field: "product id", Reason: "must be positive"}
	ErrEmptyName        error = &models.ValidationError{Field: "product name", Reason: "cannot be empty"}
	ErrNegativePrice    error = &models.ValidationError{Field: "price", Reason: "cannot be negative"}
	ErrMissingType      error = &models.ValidationError{Field: "product type", Reason: "required"}
	ErrMissingSaleDate  error = &models.ValidationError{Field: "on-sale date", Reason: "required"}
	ErrNoIDs            error = &models.ValidationError{Field: "product ids", Reason: "none given"}
)
