package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"companyevents/internal/domain"
)

const (
	minPasswordLen = 6
	defaultRole    = domain.RoleEmployee
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	employeeRepo domain.EmployeeRepository
	companyRepo  domain.CompanyRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	verifier     domain.TokenVerifier
	tokenExpiry  time.Duration
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(
	employeeRepo domain.EmployeeRepository,
	companyRepo domain.CompanyRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		hasher:       hasher,
		issuer:       issuer,
		verifier:     verifier,
		tokenExpiry:  tokenExpiry,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *authService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
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

	// Fast-path duplicate check; the unique constraint on employees.email is
	// the authoritative guard.
	if _, err := s.employeeRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}

	company, err := s.resolveCompany(ctx, input, email)
	if err != nil {
		return nil, err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	employee := domain.NewEmployee(strings.TrimSpace(input.Name), email, hash, salt, role, company.ID, now, now)
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	token, err := s.issueToken(employee)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, employee, company.Name)

	return &domain.AuthResult{
		User:  authUser(employee, company.Name),
		Token: token,
	}, nil
}

// resolveCompany returns the company the new employee joins: a freshly
// created one when CompanyName is set, or an existing one referenced by
// CompanyID.
func (s *authService) resolveCompany(ctx context.Context, input domain.RegisterInput, contactEmail string) (*domain.Company, error) {
	companyName := strings.TrimSpace(input.CompanyName)

	if companyName != "" && input.CompanyID == "" {
		if _, err := s.companyRepo.GetByName(ctx, companyName); err == nil {
			return nil, domain.ErrDuplicateCompanyName
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get company by name: %w", err)
		}
		now := time.Now()
		company := domain.NewCompany(companyName, contactEmail, "", now, now)
		if err := s.companyRepo.Create(ctx, company); err != nil {
			if errors.Is(err, domain.ErrDuplicateCompanyName) {
				return nil, domain.ErrDuplicateCompanyName
			}
			return nil, fmt.Errorf("create company: %w", err)
		}
		return company, nil
	}

	if input.CompanyID != "" {
		company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get company: %w", err)
		}
		return company, nil
	}

	return nil, domain.ErrCompanyRefRequired
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error for unknown email and bad password; no user enumeration.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	if err := s.hasher.Compare(employee.PasswordHash, employee.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	companyName, err := s.companyName(ctx, employee.CompanyID)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(employee)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		User:  authUser(employee, companyName),
		Token: token,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, token string) (string, error) {
	identity, err := s.verifier.Verify(token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	// Re-read the employee so a refreshed token carries current role and
	// company, and so tokens for deleted employees stop refreshing.
	employee, err := s.employeeRepo.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("get employee: %w", err)
	}
	return s.issueToken(employee)
}

func (s *authService) issueToken(e *domain.Employee) (string, error) {
	token, err := s.issuer.Issue(domain.Identity{
		ID:        e.ID,
		Email:     e.Email,
		Role:      e.Role,
		CompanyID: e.CompanyID,
	}, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *authService) companyName(ctx context.Context, companyID string) (string, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get company: %w", err)
	}
	return company.Name, nil
}

// sendWelcomeEmail is best effort; a mail failure never fails registration.
func (s *authService) sendWelcomeEmail(ctx context.Context, e *domain.Employee, companyName string) {
	if s.emailService == nil {
		return
	}
	data := &domain.WelcomeEmailData{
		Email:       e.Email,
		Name:        e.Name,
		CompanyName: companyName,
	}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "email", e.Email, "err", err)
	}
}

func authUser(e *domain.Employee, companyName string) domain.AuthUser {
	return domain.AuthUser{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Role:        e.Role,
		CompanyID:   e.CompanyID,
		CompanyName: companyName,
	}
}
