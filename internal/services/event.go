package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"companyevents/internal/domain"
)

type eventService struct {
	eventRepo   domain.EventRepository
	companyRepo domain.CompanyRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, companyRepo domain.CompanyRepository) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		companyRepo: companyRepo,
	}
}

// Create persists a new event owned by the caller's company. Any company
// reference in the request is ignored; tenant ownership always comes from
// the authenticated identity.
func (s *eventService) Create(ctx context.Context, input domain.CreateEventInput, caller domain.Identity) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	if _, err := s.companyRepo.GetByID(ctx, caller.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	now := time.Now()
	event := domain.NewEvent(title, input.Description, input.Date, input.Capacity, caller.CompanyID, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetAll(ctx context.Context, f domain.EventFilter, p domain.PaginationParams, caller domain.Identity) ([]*domain.Event, int, error) {
	// Non-admin callers are pinned to their own company; the companyId
	// query parameter only means something for admins.
	if !caller.IsAdmin() {
		f.CompanyID = caller.CompanyID
	}
	events, total, err := s.eventRepo.List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

// GetByID fetches the event unconditionally, then applies the tenant guard.
// The two steps are deliberate: the fetch stays reusable and the
// authorization decision stays visible at this level.
func (s *eventService) GetByID(ctx context.Context, id string, caller domain.Identity) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := domain.AssertTenantAccess(event.CompanyID, caller); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, input domain.UpdateEventInput) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		event.Title = title
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Capacity != nil {
		event.Capacity = input.Capacity
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
