package employee

import "github.com/thenoetrevino/coffeehub/internal/models"

// Domain errors for employee service. All of them match models.ErrValidation.
var (
	ErrEmptyID           error = &models.ValidationError{Field: "employee id", Reason: "cannot be empty"}
	ErrEmptyName         error = &models.ValidationError{Field: "employee name", Reason: "cannot be empty"}
	ErrMissingBirth      error = &models.ValidationError{Field: "birth date", Reason: "required"}
	ErrMissingJob        error = &models.ValidationError{Field: "job title", Reason: "required"}
	ErrMissingDepartment error = &models.ValidationError{Field: "department", Reason: "required"}
	ErrMissingBranch     error = &models.ValidationError{Field: "branch", Reason: "required"}
	ErrNoIDs             error = &models.ValidationError{Field: "employee ids", Reason: "none given"}
)
