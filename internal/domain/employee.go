package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned when an employee email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// Employee is a company member. The password hash and salt are never
// serialized in API responses.
// swagger:model Employee
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEmployee returns a new Employee. ID is set by the repository on create.
func NewEmployee(name, email, passwordHash, salt string, role Role, companyID string, createdAt, updatedAt time.Time) *Employee {
	return &Employee{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         role,
		CompanyID:    companyID,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// EmployeeFilter narrows employee list queries. Zero values mean no filter.
type EmployeeFilter struct {
	CompanyID string
	Role      Role
}

// EmployeeRepository defines the interface for employee storage.
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, f EmployeeFilter, p PaginationParams) ([]*Employee, int, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
}

// CreateEmployeeInput carries the fields for admin-initiated employee creation.
type CreateEmployeeInput struct {
	Name      string
	Email     string
	Password  string
	Role      Role
	CompanyID string
}

// UpdateEmployeeInput carries the mutable employee fields. Nil means
// unchanged. A non-nil Password is hashed before persistence.
type UpdateEmployeeInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}

// EmployeeService defines the business logic for employee management.
// List and read operations are tenant-scoped for non-admin callers.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*Employee, error)
	GetAll(ctx context.Context, f EmployeeFilter, p PaginationParams, caller Identity) ([]*Employee, int, error)
	GetByID(ctx context.Context, id string, caller Identity) (*Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id string) error
}
