package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"companyevents/internal/domain"
)

type companyService struct {
	companyRepo  domain.CompanyRepository
	employeeRepo domain.EmployeeRepository
	eventRepo    domain.EventRepository
}

// NewCompanyService creates a CompanyService with the given repositories.
func NewCompanyService(
	companyRepo domain.CompanyRepository,
	employeeRepo domain.EmployeeRepository,
	eventRepo domain.EventRepository,
) domain.CompanyService {
	return &companyService{
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
	}
}

func (s *companyService) Create(ctx context.Context, name, email, phone string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}
	if _, err := s.companyRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateCompanyName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get company by name: %w", err)
	}

	now := time.Now()
	company := domain.NewCompany(name, strings.TrimSpace(email), strings.TrimSpace(phone), now, now)
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, domain.ErrDuplicateCompanyName) {
			return nil, domain.ErrDuplicateCompanyName
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return company, nil
}

func (s *companyService) GetAll(ctx context.Context, p domain.PaginationParams) ([]*domain.Company, int, error) {
	companies, total, err := s.companyRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	return companies, total, nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

func (s *companyService) Update(ctx context.Context, id string, input domain.UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", domain.ErrInvalidInput)
		}
		company.Name = name
	}
	if input.Email != nil {
		company.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		company.Phone = strings.TrimSpace(*input.Phone)
	}
	company.UpdatedAt = time.Now()
	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, domain.ErrDuplicateCompanyName) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return company, nil
}

// Delete removes a company. Deletion is blocked while employees or events
// still reference it; dependents must be removed first.
func (s *companyService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	employees, events, err := s.companyRepo.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("count dependents: %w", err)
	}
	if employees > 0 || events > 0 {
		return domain.ErrCompanyHasDependents
	}
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (s *companyService) ListEmployees(ctx context.Context, id string, caller domain.Identity) ([]*domain.Employee, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := domain.AssertTenantAccess(id, caller); err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.ListByCompanyID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *companyService) ListEvents(ctx context.Context, id string, caller domain.Identity) ([]*domain.Event, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := domain.AssertTenantAccess(id, caller); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByCompanyID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
