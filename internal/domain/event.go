package domain

import (
	"context"
	"time"
)

// Event is a company event. Capacity is persisted but not enforced against
// the registration count.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Capacity    *int      `json:"capacity"`
	CompanyID   string    `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(title string, description *string, date time.Time, capacity *int, companyID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Capacity:    capacity,
		CompanyID:   companyID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventFilter narrows event list queries. Zero values mean no filter.
// Upcoming restricts to events with date >= now.
type EventFilter struct {
	CompanyID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Upcoming  bool
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, f EventFilter, p PaginationParams) ([]*Event, int, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// CreateEventInput carries the fields for event creation. Any client-supplied
// company reference is ignored; the event always belongs to the caller's
// company.
type CreateEventInput struct {
	Title       string
	Description *string
	Date        time.Time
	Capacity    *int
}

// UpdateEventInput carries the mutable event fields. Nil means unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Capacity    *int
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	Create(ctx context.Context, input CreateEventInput, caller Identity) (*Event, error)
	GetAll(ctx context.Context, f EventFilter, p PaginationParams, caller Identity) ([]*Event, int, error)
	GetByID(ctx context.Context, id string, caller Identity) (*Event, error)
	Update(ctx context.Context, id string, input UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, id string) error
}
