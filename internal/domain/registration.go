package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the registration workflow.
var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrAlreadyCheckedIn  = errors.New("attendee already checked in")
)

// EventRegistration links an employee to an event they intend to attend,
// with its attendance state. At most one registration exists per
// (event, employee) pair; the database enforces this with a unique
// constraint.
// swagger:model EventRegistration
type EventRegistration struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	EmployeeID  string     `json:"employee_id"`
	CheckedIn   bool       `json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEventRegistration returns a new registration in the not-checked-in
// state. ID is set by the repository on create.
func NewEventRegistration(eventID, employeeID string, createdAt, updatedAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:    eventID,
		EmployeeID: employeeID,
		CheckedIn:  false,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// AttendeeProfile is the employee subset exposed on attendee listings.
type AttendeeProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventAttendee bundles a registration with the registered employee.
type EventAttendee struct {
	Registration *EventRegistration `json:"registration"`
	Employee     *AttendeeProfile   `json:"employee"`
}

// EventRegistrationRepository defines storage operations for event
// registrations. Create returns ErrAlreadyRegistered on a unique-constraint
// violation for the (event, employee) pair; CheckIn returns
// ErrAlreadyCheckedIn when the row was already checked in.
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndEmployee(ctx context.Context, eventID, employeeID string) (*EventRegistration, error)
	GetByIDAndEvent(ctx context.Context, id, eventID string) (*EventRegistration, error)
	ListByEvent(ctx context.Context, eventID string, checkedIn *bool, p PaginationParams) ([]*EventAttendee, int, error)
	CheckIn(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// RegistrationService defines the registration and attendance workflow.
type RegistrationService interface {
	RegisterForEvent(ctx context.Context, eventID string, caller Identity) (*EventRegistration, error)
	GetEventAttendees(ctx context.Context, eventID string, checkedIn *bool, p PaginationParams) ([]*EventAttendee, int, error)
	CheckInAttendee(ctx context.Context, eventID, registrationID string) (*EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, registrationID string, caller Identity) error
	GetMyRegistration(ctx context.Context, eventID, employeeID string) (*EventRegistration, error)
}
