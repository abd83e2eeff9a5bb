// Package database holds the connections to the four backends and the
// entity accessors built on them.
package database

import (
	"context"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// EmployeeReader defines read operations for employees.
type EmployeeReader interface {
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	ListJobs(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context) ([]string, error)
}

// EmployeeWriter defines write operations for employees.
type EmployeeWriter interface {
	UpsertEmployee(ctx context.Context, e *models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

// EmployeeRepository combines all employee operations.
type EmployeeRepository interface {
	EmployeeReader
	EmployeeWriter
}

// ProductReader defines read operations for products.
type ProductReader interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductTypes(ctx context.Context) ([]string, error)
	NextProductID(ctx context.Context) (int, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	UpsertProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

// ProductRepository combines all product operations.
type ProductRepository interface {
	ProductReader
	ProductWriter
}

// MemberRepository defines member account operations.
type MemberRepository interface {
	Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	GetAvatarPath(ctx context.Context, id string) (string, error)
	SaveProfile(ctx context.Context, m *models.Member) error
}

// SequenceRepository mints global ids.
type SequenceRepository interface {
	NextGlobalID(ctx context.Context) (int64, error)
}
