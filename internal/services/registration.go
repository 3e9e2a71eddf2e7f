package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"companyevents/internal/domain"
)

type registrationService struct {
	registrationRepo domain.EventRegistrationRepository
	eventRepo        domain.EventRepository
	employeeRepo     domain.EmployeeRepository
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewRegistrationService creates a RegistrationService with the given
// repositories.
func NewRegistrationService(
	registrationRepo domain.EventRegistrationRepository,
	eventRepo domain.EventRepository,
	employeeRepo domain.EmployeeRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		employeeRepo:     employeeRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

func (s *registrationService) RegisterForEvent(ctx context.Context, eventID string, caller domain.Identity) (*domain.EventRegistration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	employee, err := s.employeeRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}

	// Fast-path check; the (event_id, employee_id) unique constraint is the
	// authoritative guard, so a raced duplicate insert still fails below.
	if _, err := s.registrationRepo.GetByEventAndEmployee(ctx, eventID, employee.ID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	now := time.Now()
	reg := domain.NewEventRegistration(eventID, employee.ID, now, now)
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmationEmail(ctx, employee, event)
	return reg, nil
}

func (s *registrationService) GetEventAttendees(ctx context.Context, eventID string, checkedIn *bool, p domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	attendees, total, err := s.registrationRepo.ListByEvent(ctx, eventID, checkedIn, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, total, nil
}

// CheckInAttendee transitions a registration to checked-in exactly once.
// A second call fails with ErrAlreadyCheckedIn and leaves the row unchanged.
func (s *registrationService) CheckInAttendee(ctx context.Context, eventID, registrationID string) (*domain.EventRegistration, error) {
	reg, err := s.registrationRepo.GetByIDAndEvent(ctx, registrationID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.CheckedIn {
		return nil, domain.ErrAlreadyCheckedIn
	}

	now := time.Now()
	if err := s.registrationRepo.CheckIn(ctx, reg.ID, now); err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("check in: %w", err)
	}

	reg.CheckedIn = true
	reg.CheckedInAt = &now
	reg.UpdatedAt = now
	return reg, nil
}

// CancelRegistration deletes a registration. Admins may cancel any
// registration on the event; a regular employee may only cancel their own.
// Cancellation is allowed even after check-in and removes the record fully.
func (s *registrationService) CancelRegistration(ctx context.Context, eventID, registrationID string, caller domain.Identity) error {
	reg, err := s.registrationRepo.GetByIDAndEvent(ctx, registrationID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if !caller.IsAdmin() && reg.EmployeeID != caller.ID {
		return domain.ErrForbidden
	}
	if err := s.registrationRepo.Delete(ctx, reg.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) GetMyRegistration(ctx context.Context, eventID, employeeID string) (*domain.EventRegistration, error) {
	reg, err := s.registrationRepo.GetByEventAndEmployee(ctx, eventID, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// sendConfirmationEmail is best effort; a mail failure never fails the
// registration.
func (s *registrationService) sendConfirmationEmail(ctx context.Context, employee *domain.Employee, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:      employee.Email,
		Name:       employee.Name,
		EventTitle: event.Title,
		EventDate:  event.Date.Format(time.RFC1123),
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed", "email", employee.Email, "err", err)
	}
}
