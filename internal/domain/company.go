package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for company operations.
var (
	ErrDuplicateCompanyName = errors.New("company name already in use")
	ErrCompanyHasDependents = errors.New("company still has employees or events")
)

// Company is the tenant root. Employees and events are scoped beneath it.
// swagger:model Company
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCompany returns a new Company. ID is set by the repository on create.
func NewCompany(name, email, phone string, createdAt, updatedAt time.Time) *Company {
	return &Company{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CompanyRepository defines the interface for company storage.
type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	List(ctx context.Context, p PaginationParams) ([]*Company, int, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error
	// CountDependents returns the number of employees and events that
	// reference the company.
	CountDependents(ctx context.Context, id string) (employees, events int, err error)
}

// UpdateCompanyInput carries the mutable company fields. Nil means unchanged.
type UpdateCompanyInput struct {
	Name  *string
	Email *string
	Phone *string
}

// CompanyService defines the business logic for company management.
type CompanyService interface {
	Create(ctx context.Context, name, email, phone string) (*Company, error)
	GetAll(ctx context.Context, p PaginationParams) ([]*Company, int, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, id string, input UpdateCompanyInput) (*Company, error)
	Delete(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, id string, caller Identity) ([]*Employee, error)
	ListEvents(ctx context.Context, id string, caller Identity) ([]*Event, error)
}
