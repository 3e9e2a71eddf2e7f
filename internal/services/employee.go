package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"companyevents/internal/domain"
)

type employeeService struct {
	employeeRepo domain.EmployeeRepository
	companyRepo  domain.CompanyRepository
	hasher       domain.PasswordHasher
}

// NewEmployeeService creates an EmployeeService with the given repositories
// and password hasher.
func NewEmployeeService(
	employeeRepo domain.EmployeeRepository,
	companyRepo domain.CompanyRepository,
	hasher domain.PasswordHasher,
) domain.EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		hasher:       hasher,
	}
}

func (s *employeeService) Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	role := input.Role
	if role == "" {
		role = defaultRole
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}

	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	// Hashing happens here, explicitly, before the persistence write.
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	employee := domain.NewEmployee(strings.TrimSpace(input.Name), email, hash, salt, role, input.CompanyID, now, now)
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetAll(ctx context.Context, f domain.EmployeeFilter, p domain.PaginationParams, caller domain.Identity) ([]*domain.Employee, int, error) {
	// Non-admin callers only ever see their own company, whatever filter
	// they asked for.
	if !caller.IsAdmin() {
		f.CompanyID = caller.CompanyID
	}
	employees, total, err := s.employeeRepo.List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return employees, total, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string, caller domain.Identity) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if err := domain.AssertTenantAccess(employee.CompanyID, caller); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, id string, input domain.UpdateEmployeeInput) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}

	if input.Name != nil {
		employee.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		employee.Email = email
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *input.Role)
		}
		employee.Role = *input.Role
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
		}
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		hash, err := s.hasher.Hash(salt, *input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		employee.Salt = salt
		employee.PasswordHash = hash
	}

	employee.UpdatedAt = time.Now()
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
